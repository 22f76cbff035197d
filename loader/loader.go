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

package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const truncationMarker = "\n\n[contenido truncado]"

// Config holds the fetch and truncation settings of a Loader.
type Config struct {
	// Timeout bounds the whole fetch, headers and body included.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// MaxChars caps the length of the returned text, in runes. Longer
	// documents are cut and marked as truncated. Zero disables the cap.
	MaxChars int

	// MaxBodyBytes caps how much of the response body is read.
	MaxBodyBytes int64
}

// DefaultConfig returns settings suitable for news articles and regulatory
// bulletins.
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		UserAgent:    "observatorio-regulatorio/1.0",
		MaxChars:     50000,
		MaxBodyBytes: 10 << 20, // 10 MiB
	}
}

// Loader fetches documents and extracts their readable text.
type Loader struct {
	config    Config
	client    *http.Client
	converter *Converter
	logger    *slog.Logger
}

// New creates a Loader with the given configuration. Zero-valued fields
// fall back to DefaultConfig.
func New(config Config) *Loader {
	defaults := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if config.MaxChars < 0 {
		config.MaxChars = 0
	}

	client := &http.Client{
		Timeout: config.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return ErrTooManyRedirects
			}
			return nil
		},
	}

	return &Loader{
		config:    config,
		client:    client,
		converter: NewConverter(),
		logger:    slog.Default().With("component", "loader"),
	}
}

// Load fetches the document at rawURL and returns its readable text.
func (l *Loader) Load(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-CO,es;q=0.8,en;q=0.5")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d %s", ErrBadStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.config.MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	text := string(body)
	if isHTML(resp.Header.Get("Content-Type"), body) {
		text = l.extractText(body, parsed)
	}

	return l.truncate(text), nil
}

// extractText reduces an HTML page to its readable text. Readability
// extraction is tried first; pages it cannot handle go through the
// markdown converter instead.
func (l *Loader) extractText(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent
	}
	if err != nil {
		l.logger.Debug("readability extraction failed, converting to markdown",
			"url", pageURL.String(), "err", err)
	}

	markdown, err := l.converter.Convert(body)
	if err != nil {
		l.logger.Warn("markdown conversion failed, using raw body",
			"url", pageURL.String(), "err", err)
		return string(body)
	}
	return markdown
}

// truncate cuts text to the configured rune budget and appends a marker so
// downstream consumers know the document was incomplete.
func (l *Loader) truncate(text string) string {
	if l.config.MaxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= l.config.MaxChars {
		return text
	}
	return string(runes[:l.config.MaxChars]) + truncationMarker
}

// isHTML reports whether the response looks like an HTML document.
func isHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/xhtml") {
		return true
	}
	head := bytes.ToLower(bytes.TrimSpace(body))
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}
