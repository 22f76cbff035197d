package chunker

import "errors"

var (
	// ErrInvalidChunkSize is returned when the configured chunk size is not positive.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrInvalidOverlap is returned when the configured overlap is negative or
	// not smaller than the chunk size. An overlap >= chunk size would make the
	// splitter advance zero or negative runes per step and never terminate.
	ErrInvalidOverlap = errors.New("overlap must be non-negative and smaller than chunk size")
)
