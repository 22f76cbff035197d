package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/chunker"
)

// loaderFunc adapts a function to the ContentLoader interface.
type loaderFunc func(ctx context.Context, url string) (string, error)

func (f loaderFunc) Load(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// consolidatorFunc adapts a function to the ai.Consolidator interface.
type consolidatorFunc func(ctx context.Context, raw ai.EntitySet) (*ai.Consolidated, error)

func (f consolidatorFunc) Consolidate(ctx context.Context, raw ai.EntitySet) (*ai.Consolidated, error) {
	return f(ctx, raw)
}

func staticLoader(text string) ContentLoader {
	return loaderFunc(func(_ context.Context, _ string) (string, error) {
		return text, nil
	})
}

func newTestPipeline(t *testing.T, loader ContentLoader, extractor ai.EntityExtractor, opts ...Option) *Pipeline {
	t.Helper()

	splitter, err := chunker.NewFixed(chunker.Config{ChunkSize: 50, Overlap: 10})
	require.NoError(t, err)

	pool, err := NewPool(2)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	pipeline, err := NewPipeline(loader, splitter, pool, extractor, opts...)
	require.NoError(t, err)

	return pipeline
}

func TestNewPipeline_RequiresCollaborators(t *testing.T) {
	splitter := chunker.MustFixed(chunker.DefaultConfig())

	pool, err := NewPool(1)
	require.NoError(t, err)
	defer pool.Release()

	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		return ai.EntitySet{}, nil
	})
	loader := staticLoader("text")

	_, err = NewPipeline(nil, splitter, pool, extractor)
	assert.ErrorIs(t, err, ErrLoaderRequired)

	_, err = NewPipeline(loader, nil, pool, extractor)
	assert.ErrorIs(t, err, ErrSplitterRequired)

	_, err = NewPipeline(loader, splitter, nil, extractor)
	assert.ErrorIs(t, err, ErrPoolRequired)

	_, err = NewPipeline(loader, splitter, pool, nil)
	assert.ErrorIs(t, err, ErrExtractorRequired)
}

func TestPipeline_Run_MergesChunkResults(t *testing.T) {
	text := strings.Repeat("La resolución regula el mercado mayorista. ", 5)

	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		return ai.EntitySet{
			Companies: []string{"XM", "xm"},
			Events:    []string{"Resolución publicada"},
		}, nil
	})

	pipeline := newTestPipeline(t, staticLoader(text), extractor)

	run, err := pipeline.Run(context.Background(), "https://example.com/norma")
	require.NoError(t, err)

	assert.Equal(t, StateDone, pipeline.State())
	assert.Equal(t, "https://example.com/norma", run.URL)
	assert.Greater(t, run.ChunkCount, 1)
	assert.Zero(t, run.FailedChunks)
	assert.NotZero(t, run.Id)
	assert.False(t, run.CreatedAt.IsZero())
	assert.Equal(t, []string{"XM"}, run.Result.Companies)
	assert.Equal(t, []string{"Resolución publicada"}, run.Result.Events)
	assert.Empty(t, run.Result.Summary)
}

func TestPipeline_Run_EmptyDocumentFails(t *testing.T) {
	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		t.Error("extractor should not be called")
		return ai.EntitySet{}, nil
	})

	for _, text := range []string{"", "   \n\t  "} {
		pipeline := newTestPipeline(t, staticLoader(text), extractor)

		_, err := pipeline.Run(context.Background(), "https://example.com/vacio")
		assert.ErrorIs(t, err, ErrEmptyDocument)
		assert.Equal(t, StateFailed, pipeline.State())
	}
}

func TestPipeline_Run_LoaderErrorFails(t *testing.T) {
	loadErr := errors.New("connection refused")
	loader := loaderFunc(func(_ context.Context, _ string) (string, error) {
		return "", loadErr
	})
	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		return ai.EntitySet{}, nil
	})

	pipeline := newTestPipeline(t, loader, extractor)

	_, err := pipeline.Run(context.Background(), "https://example.com/caida")
	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, StateFailed, pipeline.State())
}

func TestPipeline_Run_SurvivesChunkFailures(t *testing.T) {
	text := strings.Repeat("Texto del boletín regulatorio del sector eléctrico. ", 4)

	var call int
	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		call++
		if call == 2 {
			return ai.EntitySet{}, errors.New("malformed response")
		}
		return ai.EntitySet{Companies: []string{"CREG"}}, nil
	})

	splitter, err := chunker.NewFixed(chunker.Config{ChunkSize: 80, Overlap: 10})
	require.NoError(t, err)

	pool, err := NewPool(1)
	require.NoError(t, err)
	defer pool.Release()

	pipeline, err := NewPipeline(staticLoader(text), splitter, pool, extractor)
	require.NoError(t, err)

	run, err := pipeline.Run(context.Background(), "https://example.com/boletin")
	require.NoError(t, err)

	assert.Equal(t, StateDone, pipeline.State())
	assert.Equal(t, 1, run.FailedChunks)
	assert.Greater(t, run.ChunkCount, run.FailedChunks)
	assert.Equal(t, []string{"CREG"}, run.Result.Companies)
}

func TestPipeline_Run_ConsolidatorCleansResult(t *testing.T) {
	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		return ai.EntitySet{
			Companies: []string{"Ecopetrol S.A.", "ECOPETROL"},
			Persons:   []string{"Juan Pérez"},
		}, nil
	})

	consolidator := consolidatorFunc(func(_ context.Context, raw ai.EntitySet) (*ai.Consolidated, error) {
		assert.Contains(t, raw.Companies, "Ecopetrol S.A.")
		return &ai.Consolidated{
			Summary:   "Nota sobre Ecopetrol.",
			Companies: []string{"Ecopetrol"},
			Persons:   []string{"Juan Pérez"},
			Events:    []string{},
		}, nil
	})

	pipeline := newTestPipeline(t, staticLoader("Ecopetrol anunció resultados."), extractor,
		WithConsolidator(consolidator))

	run, err := pipeline.Run(context.Background(), "https://example.com/nota")
	require.NoError(t, err)

	assert.Equal(t, "Nota sobre Ecopetrol.", run.Result.Summary)
	assert.Equal(t, []string{"Ecopetrol"}, run.Result.Companies)
	assert.Equal(t, []string{"Juan Pérez"}, run.Result.Persons)
}

func TestPipeline_Run_ConsolidatorFailureFallsBack(t *testing.T) {
	extractor := extractorFunc(func(_ context.Context, _ string) (ai.EntitySet, error) {
		return ai.EntitySet{Companies: []string{"ANLA"}}, nil
	})

	consolidator := consolidatorFunc(func(_ context.Context, _ ai.EntitySet) (*ai.Consolidated, error) {
		return nil, errors.New("model unavailable")
	})

	pipeline := newTestPipeline(t, staticLoader("La ANLA otorgó la licencia ambiental."), extractor,
		WithConsolidator(consolidator))

	run, err := pipeline.Run(context.Background(), "https://example.com/licencia")
	require.NoError(t, err)

	assert.Equal(t, StateDone, pipeline.State())
	assert.Empty(t, run.Result.Summary)
	assert.Equal(t, []string{"ANLA"}, run.Result.Companies)
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateIdle:          "idle",
		StateLoading:       "loading",
		StateChunking:      "chunking",
		StateExtracting:    "extracting",
		StateConsolidating: "consolidating",
		StateDone:          "done",
		StateFailed:        "failed",
		State(42):          "state(42)",
	}
	for state, want := range tests {
		assert.Equal(t, want, state.String())
	}
}
