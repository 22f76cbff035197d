package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   Chunk
		wantErr bool
	}{
		{
			name:    "valid chunk",
			chunk:   Chunk{Index: 0, Text: "hola", Start: 0, End: 4},
			wantErr: false,
		},
		{
			name:    "valid accented chunk",
			chunk:   Chunk{Index: 2, Text: "Pérez", Start: 100, End: 105},
			wantErr: false,
		},
		{
			name:    "negative index",
			chunk:   Chunk{Index: -1, Text: "x", Start: 0, End: 1},
			wantErr: true,
		},
		{
			name:    "empty range",
			chunk:   Chunk{Index: 0, Text: "", Start: 5, End: 5},
			wantErr: true,
		},
		{
			name:    "inverted range",
			chunk:   Chunk{Index: 0, Text: "x", Start: 10, End: 5},
			wantErr: true,
		},
		{
			name:    "text length mismatch",
			chunk:   Chunk{Index: 0, Text: "abc", Start: 0, End: 5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChunk() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidChunk) {
				t.Errorf("ValidateChunk() error does not wrap ErrInvalidChunk: %v", err)
			}
		})
	}
}

func TestValidateRun(t *testing.T) {
	valid := func() *ExtractionRun {
		return &ExtractionRun{
			URL:          "https://example.com/doc.htm",
			CreatedAt:    time.Now().Add(-time.Minute),
			ChunkCount:   3,
			FailedChunks: 1,
		}
	}

	t.Run("valid run", func(t *testing.T) {
		if err := ValidateRun(valid()); err != nil {
			t.Errorf("ValidateRun() unexpected error: %v", err)
		}
	})

	t.Run("nil run", func(t *testing.T) {
		if err := ValidateRun(nil); !errors.Is(err, ErrInvalidRun) {
			t.Errorf("ValidateRun(nil) = %v, want ErrInvalidRun", err)
		}
	})

	t.Run("empty url", func(t *testing.T) {
		run := valid()
		run.URL = ""
		err := ValidateRun(run)
		if !errors.Is(err, ErrEmptyURL) {
			t.Errorf("ValidateRun() = %v, want ErrEmptyURL", err)
		}
	})

	t.Run("future timestamp", func(t *testing.T) {
		run := valid()
		run.CreatedAt = time.Now().Add(time.Hour)
		err := ValidateRun(run)
		if !errors.Is(err, ErrInvalidTimestamp) {
			t.Errorf("ValidateRun() = %v, want ErrInvalidTimestamp", err)
		}
	})

	t.Run("failed exceeds total", func(t *testing.T) {
		run := valid()
		run.FailedChunks = 4
		err := ValidateRun(run)
		if !errors.Is(err, ErrNegativeCount) {
			t.Errorf("ValidateRun() = %v, want ErrNegativeCount", err)
		}
	})
}
