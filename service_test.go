package observatorio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai/mock"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/chunker"
)

func newArticleServer(t *testing.T) *httptest.Server {
	t.Helper()

	body := strings.Repeat("La CREG expidió la resolución sobre tarifas de energía. ", 10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewService_RejectsInvalidChunkConfig(t *testing.T) {
	_, err := NewService(
		WithProvider(mock.NewMockProvider()),
		WithChunkerConfig(chunker.Config{ChunkSize: 100, Overlap: 100}),
	)
	assert.ErrorIs(t, err, chunker.ErrInvalidOverlap)
}

func TestService_Extract(t *testing.T) {
	server := newArticleServer(t)

	extractor := mock.NewMockEntityExtractor()
	extractor.ExtractEntitiesFunc = func(_ context.Context, _ string) (ai.EntitySet, error) {
		return ai.EntitySet{Companies: []string{"CREG"}, Events: []string{"Expedición de resolución"}}, nil
	}

	service, err := NewService(
		WithProvider(mock.NewMockProviderWithServices(extractor, mock.NewMockConsolidator())),
		WithChunkerConfig(chunker.Config{ChunkSize: 120, Overlap: 20}),
		WithConcurrency(2),
	)
	require.NoError(t, err)
	defer service.Close()

	run, err := service.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Greater(t, run.ChunkCount, 1)
	assert.Zero(t, run.FailedChunks)
	assert.Equal(t, []string{"CREG"}, run.Result.Companies)
	assert.Equal(t, []string{"Expedición de resolución"}, run.Result.Events)
	assert.NotEmpty(t, run.Result.Summary)
	assert.Greater(t, extractor.CallCount(), 1)
	assert.Nil(t, service.RunRepository())
}

func TestService_Extract_WithoutConsolidation(t *testing.T) {
	server := newArticleServer(t)

	consolidator := mock.NewMockConsolidator()
	service, err := NewService(
		WithProvider(mock.NewMockProviderWithServices(mock.NewMockEntityExtractor(), consolidator)),
		WithConsolidation(false),
	)
	require.NoError(t, err)
	defer service.Close()

	run, err := service.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Empty(t, run.Result.Summary)
	assert.Zero(t, consolidator.CallCount())
}

func TestService_Extract_PersistsHistory(t *testing.T) {
	server := newArticleServer(t)

	service, err := NewService(
		WithProvider(mock.NewMockProvider()),
		WithHistory(filepath.Join(t.TempDir(), "runs")),
	)
	require.NoError(t, err)
	defer service.Close()

	run, err := service.Extract(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, service.RunRepository())

	latest, err := service.RunRepository().LatestRunForURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, run.Id, latest.Id)
}

func TestService_Extract_SemanticChunking(t *testing.T) {
	server := newArticleServer(t)

	service, err := NewService(
		WithProvider(mock.NewMockProvider()),
		WithSemanticChunking(true),
		WithChunkerConfig(chunker.Config{ChunkSize: 150, Overlap: 20}),
	)
	require.NoError(t, err)
	defer service.Close()

	run, err := service.Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Greater(t, run.ChunkCount, 1)
}
