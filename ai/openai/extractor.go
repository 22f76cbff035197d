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


package openai

import (
	"context"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
)

// EntityExtractor implements ai.EntityExtractor using OpenAI-compatible chat APIs.
type EntityExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// newEntityExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEntityExtractor(config *ai.Config) (*EntityExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractionHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractionModel),
	)
	if err != nil {
		return nil, err
	}

	return &EntityExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewEntityExtractor creates a new entity extractor using the provided configuration.
//
// Returns ai.EntityExtractor interface to enforce abstraction.
func NewEntityExtractor(config *ai.Config) (ai.EntityExtractor, error) {
	return newEntityExtractor(config)
}

// ExtractEntities extracts companies, persons and events from a text
// fragment using an LLM. The model is called exactly once; a malformed
// response is an error for the caller to handle, not a reason to retry.
func (e *EntityExtractor) ExtractEntities(ctx context.Context, text string) (ai.EntitySet, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(extractionPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("failed to generate content", "err", err)
		return ai.EntitySet{}, err
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return ai.EntitySet{}, nil
	}

	set, err := parseEntities(response.Choices[0].Content)
	if err != nil {
		e.logger.Warn("error parsing extraction response",
			"response", response.Choices[0].Content,
			"err", err)
		return ai.EntitySet{}, err
	}

	e.logger.Debug("extracted entities",
		"companies", len(set.Companies),
		"persons", len(set.Persons),
		"events", len(set.Events))

	return set, nil
}
