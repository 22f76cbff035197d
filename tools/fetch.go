// Copyright 2025 Observatorio Regulatorio
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Fetcher supplies the readable text of a document given its URL.
type Fetcher interface {
	Load(ctx context.Context, url string) (string, error)
}

// FetchURL is a tool that fetches a web page and returns its main text
// content, so an agent model can read documents it was only given a link to.
type FetchURL struct {
	fetcher Fetcher
}

// NewFetchURL creates the fetch tool over the given fetcher.
func NewFetchURL(fetcher Fetcher) (*FetchURL, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	return &FetchURL{fetcher: fetcher}, nil
}

func (f *FetchURL) Name() string {
	return "fetch_url_content"
}

func (f *FetchURL) Description() string {
	return "Fetch a web page and return its readable text content. " +
		"Use this to read the document behind a URL before analyzing it."
}

func (f *FetchURL) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "Absolute http or https URL of the page to fetch",
			},
		},
		"required": []string{"url"},
	}
}

// Call fetches the page named in args and returns its text.
func (f *FetchURL) Call(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(params.URL) == "" {
		return "", errors.New("url argument is required")
	}

	text, err := f.fetcher.Load(ctx, params.URL)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", params.URL, err)
	}
	return text, nil
}
