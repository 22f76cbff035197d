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
	"encoding/json"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
)

// Consolidator implements ai.Consolidator using OpenAI-compatible chat APIs.
type Consolidator struct {
	client llms.Model
	logger *slog.Logger
}

// consolidationInput is the JSON payload handed to the model.
type consolidationInput struct {
	Companies []string `json:"companies"`
	Persons   []string `json:"persons"`
	Events    []string `json:"events"`
}

// newConsolidator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newConsolidator(config *ai.Config) (*Consolidator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ConsolidationHost),
		openai.WithToken("none"),
		openai.WithModel(config.ConsolidationModel),
	)
	if err != nil {
		return nil, err
	}

	return &Consolidator{
		client: client,
		logger: slog.Default().With("component", "openai-consolidator"),
	}, nil
}

// NewConsolidator creates a new consolidator using the provided configuration.
//
// Returns ai.Consolidator interface to enforce abstraction.
func NewConsolidator(config *ai.Config) (ai.Consolidator, error) {
	return newConsolidator(config)
}

// Consolidate cleans up the raw entity lists and produces a document
// summary. It is tried exactly once; callers degrade to the raw lists on
// error.
func (c *Consolidator) Consolidate(ctx context.Context, raw ai.EntitySet) (*ai.Consolidated, error) {
	input, err := json.Marshal(consolidationInput{
		Companies: raw.Companies,
		Persons:   raw.Persons,
		Events:    raw.Events,
	})
	if err != nil {
		return nil, err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(consolidationPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(string(input)),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return &ai.Consolidated{
			Companies: raw.Companies,
			Persons:   raw.Persons,
			Events:    raw.Events,
		}, nil
	}

	consolidated, err := parseConsolidated(response.Choices[0].Content)
	if err != nil {
		c.logger.Warn("error parsing consolidation response",
			"response", response.Choices[0].Content,
			"err", err)
		return nil, err
	}

	c.logger.Debug("consolidated entities",
		"companies", len(consolidated.Companies),
		"persons", len(consolidated.Persons),
		"events", len(consolidated.Events))

	return consolidated, nil
}
