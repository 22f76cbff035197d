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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// ExtractionHost is the base URL for the fragment extraction service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	ExtractionHost string

	// ConsolidationHost is the base URL for the consolidation service API.
	// Usually the same server as ExtractionHost.
	ConsolidationHost string

	// ExtractionModel is the model identifier used for per-fragment extraction.
	// Example: "gpt-oss:latest", "qwen2.5:3b"
	ExtractionModel string

	// ConsolidationModel is the model identifier used for the final
	// consolidation pass. A larger model than ExtractionModel is reasonable
	// since it runs once per document.
	ConsolidationModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithExtractionHost sets the extraction service host URL.
func WithExtractionHost(host string) ConfigOption {
	return func(c *Config) {
		c.ExtractionHost = host
	}
}

// WithConsolidationHost sets the consolidation service host URL.
func WithConsolidationHost(host string) ConfigOption {
	return func(c *Config) {
		c.ConsolidationHost = host
	}
}

// WithHost sets both extraction and consolidation hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.ExtractionHost = host
		c.ConsolidationHost = host
	}
}

// WithExtractionModel sets the extraction model identifier.
func WithExtractionModel(model string) ConfigOption {
	return func(c *Config) {
		c.ExtractionModel = model
	}
}

// WithConsolidationModel sets the consolidation model identifier.
func WithConsolidationModel(model string) ConfigOption {
	return func(c *Config) {
		c.ConsolidationModel = model
	}
}

// WithModel sets both extraction and consolidation models to the same identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.ExtractionModel = model
		c.ConsolidationModel = model
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible service. By default, extraction and consolidation use the
// same host and model.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		ExtractionHost:     defaultHost,
		ConsolidationHost:  defaultHost,
		ExtractionModel:    "gpt-oss:latest",
		ConsolidationModel: "gpt-oss:latest",
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithExtractionModel("qwen2.5:3b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.ExtractionHost != "" && !strings.HasSuffix(c.ExtractionHost, "/v1") {
		c.ExtractionHost = strings.TrimSuffix(c.ExtractionHost, "/") + "/v1"
	}
	if c.ConsolidationHost != "" && !strings.HasSuffix(c.ConsolidationHost, "/v1") {
		c.ConsolidationHost = strings.TrimSuffix(c.ConsolidationHost, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.ExtractionHost == "" {
		return errors.New("ai config: ExtractionHost is required")
	}
	if c.ConsolidationHost == "" {
		return errors.New("ai config: ConsolidationHost is required")
	}
	if c.ExtractionModel == "" {
		return errors.New("ai config: ExtractionModel is required")
	}
	if c.ConsolidationModel == "" {
		return errors.New("ai config: ConsolidationModel is required")
	}
	return nil
}
