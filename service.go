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


package observatorio

import (
	"context"
	"log/slog"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai/openai"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/chunker"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/extraction"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/loader"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/storage"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/storage/badger"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/tools"
)

// defaultConcurrency bounds how many fragment extractions run at once.
const defaultConcurrency = 4

// Service wires the document loader, the AI provider, and optionally the
// run history store into ready-to-use extraction operations.
type Service struct {
	options  serviceOptions
	loader   *loader.Loader
	provider ai.AIProvider
	backend  *badger.Backend
	runRepo  storage.RunRepository
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig      *ai.Config
	loaderConfig  loader.Config
	chunkerConfig chunker.Config
	semantic      bool
	concurrency   int
	consolidate   bool
	historyPath   string
	provider      ai.AIProvider
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithLoaderConfig sets the document loader configuration.
func WithLoaderConfig(config loader.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.loaderConfig = config
	}
}

// WithChunkerConfig sets the chunk size and overlap.
func WithChunkerConfig(config chunker.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.chunkerConfig = config
	}
}

// WithSemanticChunking makes the service split documents at paragraph and
// sentence boundaries instead of fixed offsets.
func WithSemanticChunking(enabled bool) ServiceOption {
	return func(o *serviceOptions) {
		o.semantic = enabled
	}
}

// WithConcurrency sets how many fragments are extracted at once.
// Values below 1 keep the default.
func WithConcurrency(n int) ServiceOption {
	return func(o *serviceOptions) {
		if n >= 1 {
			o.concurrency = n
		}
	}
}

// WithConsolidation toggles the consolidation pass that cleans the merged
// lists and produces a summary. Enabled by default.
func WithConsolidation(enabled bool) ServiceOption {
	return func(o *serviceOptions) {
		o.consolidate = enabled
	}
}

// WithHistory persists completed runs to a BadgerDB database at path.
// Without this option the service keeps no history.
func WithHistory(path string) ServiceOption {
	return func(o *serviceOptions) {
		o.historyPath = path
	}
}

// WithProvider replaces the OpenAI-compatible provider, mainly for tests.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// NewService creates a Service with the given options.
func NewService(opts ...ServiceOption) (*Service, error) {
	options := serviceOptions{
		aiConfig:      ai.DefaultConfig(),
		loaderConfig:  loader.DefaultConfig(),
		chunkerConfig: chunker.DefaultConfig(),
		concurrency:   defaultConcurrency,
		consolidate:   true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	// Validate chunk configuration up front rather than on first use
	if err := options.chunkerConfig.Validate(); err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	s := &Service{
		options:  options,
		loader:   loader.New(options.loaderConfig),
		provider: provider,
		logger:   slog.Default().With("component", "service"),
	}

	if options.historyPath != "" {
		backend, err := badger.OpenBackend(options.historyPath, false)
		if err != nil {
			provider.Close()
			return nil, err
		}
		runRepo, err := badger.NewRunRepository(backend)
		if err != nil {
			backend.Close()
			provider.Close()
			return nil, err
		}
		s.backend = backend
		s.runRepo = runRepo
	}

	return s, nil
}

// Extract runs the full pipeline over the document at url: fetch, chunk,
// extract concurrently, merge, and consolidate. When history is enabled
// the completed run is persisted before returning.
func (s *Service) Extract(ctx context.Context, url string, opts ...extraction.Option) (*core.ExtractionRun, error) {
	splitter := s.splitter()

	pool, err := extraction.NewPool(s.options.concurrency)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	pipelineOpts := opts
	if s.options.consolidate {
		pipelineOpts = append([]extraction.Option{
			extraction.WithConsolidator(s.provider.Consolidator()),
		}, opts...)
	}

	pipeline, err := extraction.NewPipeline(s.loader, splitter, pool,
		s.provider.EntityExtractor(), pipelineOpts...)
	if err != nil {
		return nil, err
	}

	run, err := pipeline.Run(ctx, url)
	if err != nil {
		return nil, err
	}

	if s.runRepo != nil {
		if _, err := s.runRepo.AddRun(ctx, run); err != nil {
			s.logger.Error("error persisting run", "url", url, "err", err)
		}
	}

	return run, nil
}

// ExtractWithAgent hands the URL to the model and lets it fetch the
// document itself through the fetch tool, instead of chunking locally.
// Best suited to documents short enough for a single context window.
func (s *Service) ExtractWithAgent(ctx context.Context, url string) (ai.EntitySet, error) {
	registry := tools.NewRegistry()

	fetch, err := tools.NewFetchURL(s.loader)
	if err != nil {
		return ai.EntitySet{}, err
	}
	if err := registry.Register(fetch); err != nil {
		return ai.EntitySet{}, err
	}

	agent, err := openai.NewAgent(s.options.aiConfig, registry)
	if err != nil {
		return ai.EntitySet{}, err
	}

	return agent.ExtractFromURL(ctx, url)
}

// RunRepository returns the run history store, or nil when the service
// was created without WithHistory.
func (s *Service) RunRepository() storage.RunRepository {
	return s.runRepo
}

// Close releases the AI provider and, when history is enabled, the store.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if s.runRepo != nil {
		if err := s.runRepo.Close(); err != nil {
			s.logger.Error("error closing run repository", "err", err)
			return err
		}
	}
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

func (s *Service) splitter() chunker.Splitter {
	if s.options.semantic {
		return chunker.MustSemantic(s.options.chunkerConfig)
	}
	return chunker.MustFixed(s.options.chunkerConfig)
}
