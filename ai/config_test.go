package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.ExtractionHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ConsolidationHost)
	assert.NotEmpty(t, cfg.ExtractionModel)
	assert.NotEmpty(t, cfg.ConsolidationModel)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://inference:9100"),
		WithExtractionModel("qwen2.5:3b"),
		WithConsolidationModel("gpt-oss:120b-cloud"),
	)

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "http://inference:9100/v1", cfg.ExtractionHost)
	assert.Equal(t, "http://inference:9100/v1", cfg.ConsolidationHost)
	assert.Equal(t, "qwen2.5:3b", cfg.ExtractionModel)
	assert.Equal(t, "gpt-oss:120b-cloud", cfg.ConsolidationModel)
}

func TestNewConfig_SplitHosts(t *testing.T) {
	cfg := NewConfig(
		WithExtractionHost("http://small-models:11434"),
		WithConsolidationHost("http://big-models:11434"),
		WithModel("gpt-oss:latest"),
	)

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "http://small-models:11434/v1", cfg.ExtractionHost)
	assert.Equal(t, "http://big-models:11434/v1", cfg.ConsolidationHost)
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.ExtractionHost)
			assert.Equal(t, tt.want, cfg.ConsolidationHost)
		})
	}
}

func TestConfig_Validate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing extraction host", func(c *Config) { c.ExtractionHost = "" }},
		{"missing consolidation host", func(c *Config) { c.ConsolidationHost = "" }},
		{"missing extraction model", func(c *Config) { c.ExtractionModel = "" }},
		{"missing consolidation model", func(c *Config) { c.ConsolidationModel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
