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
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/tools"
)

var (
	// ErrRegistryRequired is returned when an agent is created without a tool registry.
	ErrRegistryRequired = errors.New("tool registry required")

	// ErrToolLoopLimit is returned when the model keeps requesting tools
	// past the iteration budget without producing a final answer.
	ErrToolLoopLimit = errors.New("tool loop limit reached without a final answer")
)

const agentPrompt = extractionPrompt + `

You are given the URL of the document instead of its text. Use the available
tools to fetch the document content first, then analyze it and answer with
the JSON object described above. Do not answer before reading the document.`

// defaultMaxIterations bounds the fetch-analyze loop. One fetch plus the
// final answer fits well within it; a model stuck requesting tools does not
// spin forever.
const defaultMaxIterations = 5

// Agent drives an agentic extraction: the model is handed a URL and a set
// of tools, fetches the document itself, and returns the extracted entities.
type Agent struct {
	client        llms.Model
	registry      *tools.Registry
	maxIterations int
	logger        *slog.Logger
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithMaxIterations sets how many model turns the agent allows before
// giving up. Values below 1 keep the default.
func WithMaxIterations(n int) AgentOption {
	return func(a *Agent) {
		if n >= 1 {
			a.maxIterations = n
		}
	}
}

// NewAgent creates an agent over the extraction model and the given tools.
func NewAgent(config *ai.Config, registry *tools.Registry, opts ...AgentOption) (*Agent, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ExtractionHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractionModel),
	)
	if err != nil {
		return nil, err
	}

	a := &Agent{
		client:        client,
		registry:      registry,
		maxIterations: defaultMaxIterations,
		logger:        slog.Default().With("component", "openai-agent"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ExtractFromURL asks the model to fetch the document at url with its tools
// and extract entities from it. The conversation is bounded: once the
// iteration budget is spent the run fails with ErrToolLoopLimit.
func (a *Agent) ExtractFromURL(ctx context.Context, url string) (ai.EntitySet, error) {
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(agentPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("Extract the entities from the document at: " + url),
			},
		},
	}

	available := a.llmTools()

	for iteration := 0; iteration < a.maxIterations; iteration++ {
		response, err := a.client.GenerateContent(ctx, messages,
			llms.WithTemperature(0.0), llms.WithTools(available))
		if err != nil {
			a.logger.Error("failed to generate content", "iteration", iteration+1, "err", err)
			return ai.EntitySet{}, err
		}

		if len(response.Choices) < 1 {
			a.logger.Debug("no choices returned from model")
			return ai.EntitySet{}, nil
		}
		choice := response.Choices[0]

		if len(choice.ToolCalls) == 0 {
			set, err := parseEntities(choice.Content)
			if err != nil {
				a.logger.Warn("error parsing agent response",
					"response", choice.Content,
					"err", err)
				return ai.EntitySet{}, err
			}
			return set, nil
		}

		// Echo the assistant turn with its tool calls, then answer each one.
		assistant := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		for _, call := range choice.ToolCalls {
			assistant.Parts = append(assistant.Parts, call)
		}
		messages = append(messages, assistant)

		for _, call := range choice.ToolCalls {
			messages = append(messages, a.answerToolCall(ctx, call))
		}
	}

	return ai.EntitySet{}, fmt.Errorf("%w after %d iterations", ErrToolLoopLimit, a.maxIterations)
}

// answerToolCall executes one requested tool and wraps its output as a tool
// message. Tool failures are reported back to the model as text rather than
// aborting the conversation.
func (a *Agent) answerToolCall(ctx context.Context, call llms.ToolCall) llms.MessageContent {
	name := call.FunctionCall.Name
	a.logger.Debug("tool requested", "tool", name)

	content := ""
	tool, err := a.registry.Get(name)
	if err == nil {
		content, err = tool.Call(ctx, json.RawMessage(call.FunctionCall.Arguments))
	}
	if err != nil {
		a.logger.Warn("tool call failed", "tool", name, "err", err)
		content = "ERROR: " + err.Error()
	}

	return llms.MessageContent{
		Role: llms.ChatMessageTypeTool,
		Parts: []llms.ContentPart{
			llms.ToolCallResponse{
				ToolCallID: call.ID,
				Name:       name,
				Content:    content,
			},
		},
	}
}

// llmTools converts the registry to the wire format the chat API expects.
func (a *Agent) llmTools() []llms.Tool {
	registered := a.registry.All()
	converted := make([]llms.Tool, 0, len(registered))
	for _, tool := range registered {
		converted = append(converted, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		})
	}
	return converted
}
