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
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

// Pool runs entity extraction over document chunks with a bounded number
// of concurrent calls.
type Pool struct {
	workers *ants.Pool
	size    int
	logger  *slog.Logger
	monitor Monitor
}

// PoolOption configures a Pool.
type PoolOption func(*Pool) error

// WithPoolLogger sets a custom logger.
// Default is slog.Default().
func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithPoolMonitor sets a monitor notified as chunks complete.
func WithPoolMonitor(monitor Monitor) PoolOption {
	return func(p *Pool) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// NewPool creates a pool that allows at most size extraction calls in
// flight at once.
func NewPool(size int, opts ...PoolOption) (*Pool, error) {
	if size < 1 {
		return nil, ErrInvalidConcurrency
	}

	workers, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		workers: workers,
		size:    size,
		logger:  slog.Default(),
		monitor: &noopMonitor{},
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	p.logger = p.logger.With("component", "extraction-pool")

	return p, nil
}

// Size returns the concurrency limit.
func (p *Pool) Size() int {
	return p.size
}

// Run extracts entities from every chunk and returns one PartialResult per
// chunk, in chunk order, regardless of completion order. A chunk whose
// extraction fails yields an empty result with Failed set; sibling chunks
// are unaffected. Once ctx is cancelled, chunks not yet started are marked
// failed without calling the extractor, while chunks already in flight are
// allowed to finish.
func (p *Pool) Run(ctx context.Context, chunks []core.Chunk, extractor ai.EntityExtractor) []core.PartialResult {
	results := make([]core.PartialResult, len(chunks))

	var wg sync.WaitGroup
	total := len(chunks)

	// progressMu is held across increment plus notify so the monitor sees
	// the completed count arrive in order.
	var progressMu sync.Mutex
	completed := 0
	chunkDone := func() {
		progressMu.Lock()
		completed++
		p.monitor.ChunkDone(completed, total)
		progressMu.Unlock()
	}

	for i := range chunks {
		chunk := chunks[i]
		out := &results[i]
		out.ChunkIndex = chunk.Index

		wg.Add(1)
		err := p.workers.Submit(func() {
			defer wg.Done()
			p.extractOne(ctx, chunk, extractor, out)
			chunkDone()
		})
		if err != nil {
			wg.Done()
			p.logger.Warn("could not submit chunk", "chunk", chunk.Index, "err", err)
			out.Failed = true
			chunkDone()
		}
	}

	wg.Wait()
	return results
}

func (p *Pool) extractOne(ctx context.Context, chunk core.Chunk, extractor ai.EntityExtractor, out *core.PartialResult) {
	if ctx.Err() != nil {
		p.logger.Warn("chunk skipped", "chunk", chunk.Index, "err", ctx.Err())
		out.Failed = true
		return
	}

	set, err := extractor.ExtractEntities(ctx, chunk.Text)
	if err != nil {
		p.logger.Warn("chunk extraction failed", "chunk", chunk.Index, "err", err)
		out.Failed = true
		return
	}

	out.Companies = set.Companies
	out.Persons = set.Persons
	out.Events = set.Events
}

// Release releases the underlying worker pool.
// The pool should not be used after calling Release.
func (p *Pool) Release() {
	if p.workers != nil {
		p.workers.Release()
	}
}
