package chunker

import (
	"fmt"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

// Config holds chunking configuration.
type Config struct {
	// ChunkSize is the maximum chunk length in runes.
	ChunkSize int

	// Overlap is the number of runes consecutive chunks share.
	Overlap int
}

// DefaultConfig returns chunking defaults sized for local model context windows.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 2000,
		Overlap:   100,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap %d, chunk size %d", ErrInvalidOverlap, c.Overlap, c.ChunkSize)
	}
	return nil
}

// Splitter splits document text into an ordered sequence of chunks.
type Splitter interface {
	Split(text string) []core.Chunk
}

// Fixed splits text at fixed rune offsets with a constant stride.
type Fixed struct {
	config Config
}

var _ Splitter = (*Fixed)(nil)

// NewFixed creates a fixed-stride splitter with the given configuration.
// Returns an error if the configuration is invalid.
func NewFixed(cfg Config) (*Fixed, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Fixed{config: cfg}, nil
}

// MustFixed creates a fixed-stride splitter, panicking on invalid config.
// Use for known-good configurations.
func MustFixed(cfg Config) *Fixed {
	f, err := NewFixed(cfg)
	if err != nil {
		panic(err)
	}
	return f
}

// Split chops text into chunks of up to ChunkSize runes, each starting
// ChunkSize - Overlap runes after the previous one. The last chunk may be
// shorter. Empty input yields no chunks.
func (f *Fixed) Split(text string) []core.Chunk {
	runes := []rune(text)
	stride := f.config.ChunkSize - f.config.Overlap

	var chunks []core.Chunk
	for start := 0; start < len(runes); start += stride {
		end := start + f.config.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, core.Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
			Start: start,
			End:   end,
		})
	}
	return chunks
}
