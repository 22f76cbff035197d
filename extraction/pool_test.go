package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

// extractorFunc adapts a function to the ai.EntityExtractor interface.
type extractorFunc func(ctx context.Context, text string) (ai.EntitySet, error)

func (f extractorFunc) ExtractEntities(ctx context.Context, text string) (ai.EntitySet, error) {
	return f(ctx, text)
}

// progressMonitor records ChunkDone notifications.
type progressMonitor struct {
	noopMonitor
	mu   sync.Mutex
	seen []int
}

func (m *progressMonitor) ChunkDone(completed, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, completed)
}

func makeChunks(texts ...string) []core.Chunk {
	chunks := make([]core.Chunk, len(texts))
	start := 0
	for i, text := range texts {
		end := start + len([]rune(text))
		chunks[i] = core.Chunk{Index: i, Text: text, Start: start, End: end}
		start = end
	}
	return chunks
}

func TestNewPool_RejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := NewPool(size)
		assert.ErrorIs(t, err, ErrInvalidConcurrency)
	}
}

func TestPool_Run_ResultsInChunkOrder(t *testing.T) {
	pool, err := NewPool(4)
	require.NoError(t, err)
	defer pool.Release()

	chunks := makeChunks("alpha", "beta", "gamma", "delta")

	// Earlier chunks sleep longer so completion order is reversed.
	extractor := extractorFunc(func(_ context.Context, text string) (ai.EntitySet, error) {
		for i, c := range chunks {
			if c.Text == text {
				time.Sleep(time.Duration(len(chunks)-i) * 10 * time.Millisecond)
			}
		}
		return ai.EntitySet{Companies: []string{strings.ToUpper(text)}}, nil
	})

	results := pool.Run(context.Background(), chunks, extractor)

	require.Len(t, results, len(chunks))
	for i, result := range results {
		assert.Equal(t, i, result.ChunkIndex)
		assert.Equal(t, []string{strings.ToUpper(chunks[i].Text)}, result.Companies)
		assert.False(t, result.Failed)
	}
}

func TestPool_Run_BoundsConcurrency(t *testing.T) {
	const limit = 3

	pool, err := NewPool(limit)
	require.NoError(t, err)
	defer pool.Release()

	var inflight, peak atomic.Int64
	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		return ai.EntitySet{}, nil
	})

	texts := make([]string, 20)
	for i := range texts {
		texts[i] = fmt.Sprintf("chunk %d", i)
	}

	pool.Run(context.Background(), makeChunks(texts...), extractor)

	assert.LessOrEqual(t, peak.Load(), int64(limit))
	assert.Greater(t, peak.Load(), int64(0))
}

func TestPool_Run_IsolatesFailures(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)
	defer pool.Release()

	chunks := makeChunks("first", "second", "third")
	extractor := extractorFunc(func(_ context.Context, text string) (ai.EntitySet, error) {
		if text == "second" {
			return ai.EntitySet{}, errors.New("model returned garbage")
		}
		return ai.EntitySet{Persons: []string{text}}, nil
	})

	results := pool.Run(context.Background(), chunks, extractor)

	require.Len(t, results, 3)
	assert.False(t, results[0].Failed)
	assert.Equal(t, []string{"first"}, results[0].Persons)
	assert.True(t, results[1].Failed)
	assert.Empty(t, results[1].Persons)
	assert.False(t, results[2].Failed)
	assert.Equal(t, []string{"third"}, results[2].Persons)
}

func TestPool_Run_ProgressIsMonotonic(t *testing.T) {
	monitor := &progressMonitor{}

	pool, err := NewPool(1, WithPoolMonitor(monitor))
	require.NoError(t, err)
	defer pool.Release()

	chunks := makeChunks("a", "b", "c", "d", "e")
	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		return ai.EntitySet{}, nil
	})

	pool.Run(context.Background(), chunks, extractor)

	require.Len(t, monitor.seen, len(chunks))
	for i, completed := range monitor.seen {
		assert.Equal(t, i+1, completed)
	}
}

func TestPool_Run_ProgressIsMonotonicUnderConcurrency(t *testing.T) {
	monitor := &progressMonitor{}

	pool, err := NewPool(4, WithPoolMonitor(monitor))
	require.NoError(t, err)
	defer pool.Release()

	texts := make([]string, 40)
	for i := range texts {
		texts[i] = fmt.Sprintf("chunk %d", i)
	}

	// Jittered latencies force completions to interleave across workers.
	extractor := extractorFunc(func(_ context.Context, text string) (ai.EntitySet, error) {
		time.Sleep(time.Duration(len(text)%5) * time.Millisecond)
		return ai.EntitySet{}, nil
	})

	pool.Run(context.Background(), makeChunks(texts...), extractor)

	require.Len(t, monitor.seen, len(texts))
	for i, completed := range monitor.seen {
		assert.Equal(t, i+1, completed)
	}
}

func TestPool_Run_CancelledContextSkipsRemaining(t *testing.T) {
	pool, err := NewPool(1)
	require.NoError(t, err)
	defer pool.Release()

	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int64
	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		calls.Add(1)
		cancel()
		return ai.EntitySet{Events: []string{"started before cancel"}}, nil
	})

	results := pool.Run(ctx, makeChunks("one", "two", "three"), extractor)

	// The first chunk was already in flight and finishes; the rest are
	// marked failed without calling the extractor.
	require.Len(t, results, 3)
	assert.EqualValues(t, 1, calls.Load())
	assert.False(t, results[0].Failed)
	assert.True(t, results[1].Failed)
	assert.True(t, results[2].Failed)
}

func TestPool_Run_EmptyChunks(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)
	defer pool.Release()

	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		t.Fatal("extractor should not be called")
		return ai.EntitySet{}, nil
	})

	results := pool.Run(context.Background(), nil, extractor)

	assert.Empty(t, results)
}
