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

package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/chunker"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

// State identifies the phase a pipeline run is in.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateChunking
	StateExtracting
	StateConsolidating
	StateDone
	StateFailed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateChunking:
		return "chunking"
	case StateExtracting:
		return "extracting"
	case StateConsolidating:
		return "consolidating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ContentLoader supplies the raw text of a document.
type ContentLoader interface {
	Load(ctx context.Context, url string) (string, error)
}

// Pipeline sequences a full extraction run: load a document, split it
// into chunks, extract entities from each chunk concurrently, and merge
// the partial results into a single consolidated record.
type Pipeline struct {
	loader       ContentLoader
	splitter     chunker.Splitter
	pool         *Pool
	extractor    ai.EntityExtractor
	consolidator ai.Consolidator
	monitor      Monitor
	logger       *slog.Logger
	state        atomic.Int32
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithConsolidator sets a consolidator that cleans up and summarizes the
// merged entity lists. Without one the pipeline returns the plain union
// of the per-chunk results.
func WithConsolidator(consolidator ai.Consolidator) Option {
	return func(p *Pipeline) error {
		p.consolidator = consolidator
		return nil
	}
}

// WithMonitor sets a monitor notified at each phase of the run.
func WithMonitor(monitor Monitor) Option {
	return func(p *Pipeline) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline over the given collaborators.
func NewPipeline(
	loader ContentLoader,
	splitter chunker.Splitter,
	pool *Pool,
	extractor ai.EntityExtractor,
	opts ...Option,
) (*Pipeline, error) {
	if loader == nil {
		return nil, ErrLoaderRequired
	}
	if splitter == nil {
		return nil, ErrSplitterRequired
	}
	if pool == nil {
		return nil, ErrPoolRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	p := &Pipeline{
		loader:    loader,
		splitter:  splitter,
		pool:      pool,
		extractor: extractor,
		monitor:   &noopMonitor{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.logger = p.logger.With("component", "pipeline")
	p.state.Store(int32(StateIdle))

	return p, nil
}

// State returns the current phase of the pipeline.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

func (p *Pipeline) setState(s State) {
	p.state.Store(int32(s))
}

func (p *Pipeline) fail(err error) (*core.ExtractionRun, error) {
	p.setState(StateFailed)
	p.logger.Error("run failed", "state", p.State(), "err", err)
	return nil, err
}

// Run executes a full extraction over the document at url.
//
// An empty document fails the run. Individual chunk failures do not: the
// run completes with whatever the remaining chunks produced, and the
// returned record counts how many chunks failed. A consolidation failure
// degrades to the plain union merge.
func (p *Pipeline) Run(ctx context.Context, url string) (*core.ExtractionRun, error) {
	p.monitor.Start(url)

	p.setState(StateLoading)
	text, err := p.loader.Load(ctx, url)
	if err != nil {
		return p.fail(fmt.Errorf("loading %s: %w", url, err))
	}
	if strings.TrimSpace(text) == "" {
		return p.fail(fmt.Errorf("loading %s: %w", url, ErrEmptyDocument))
	}
	p.monitor.AfterLoad(utf8.RuneCountInString(text))

	p.setState(StateChunking)
	chunks := p.splitter.Split(text)
	p.logger.Info("document chunked", "url", url, "chunks", len(chunks))
	p.monitor.AfterChunking(chunks)

	p.setState(StateExtracting)
	partials := p.pool.Run(ctx, chunks, p.extractor)
	p.monitor.AfterExtraction(partials)

	failed := 0
	for _, partial := range partials {
		if partial.Failed {
			failed++
		}
	}
	if failed > 0 {
		p.logger.Warn("some chunks failed", "failed", failed, "total", len(partials))
	}

	p.setState(StateConsolidating)
	result := p.consolidate(ctx, partials)
	p.monitor.AfterConsolidation(&result)

	createdAt := time.Now().UTC()
	run := &core.ExtractionRun{
		Id:           core.RunID(url, createdAt),
		URL:          url,
		CreatedAt:    createdAt,
		ChunkCount:   len(chunks),
		FailedChunks: failed,
		Result:       result,
	}

	p.setState(StateDone)
	p.monitor.Finish(run)

	return run, nil
}

// consolidate merges the partial results, passing them through the
// consolidator when one is configured. Consolidation failures fall back
// to the union merge.
func (p *Pipeline) consolidate(ctx context.Context, partials []core.PartialResult) core.ConsolidatedResult {
	merged := MergeUnion(partials)
	if p.consolidator == nil {
		return merged
	}

	cleaned, err := p.consolidator.Consolidate(ctx, ai.EntitySet{
		Companies: merged.Companies,
		Persons:   merged.Persons,
		Events:    merged.Events,
	})
	if err != nil {
		p.logger.Warn("consolidation failed, keeping merged lists", "err", err)
		return merged
	}

	return core.ConsolidatedResult{
		Summary:   cleaned.Summary,
		Companies: cleaned.Companies,
		Persons:   cleaned.Persons,
		Events:    cleaned.Events,
	}
}
