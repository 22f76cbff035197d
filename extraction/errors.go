package extraction

import "errors"

var (
	// ErrInvalidConcurrency is returned when a pool is created with a
	// concurrency limit below 1.
	ErrInvalidConcurrency = errors.New("concurrency limit must be at least 1")

	// ErrLoaderRequired is returned when a content loader is not provided.
	ErrLoaderRequired = errors.New("content loader required")

	// ErrSplitterRequired is returned when a chunk splitter is not provided.
	ErrSplitterRequired = errors.New("chunk splitter required")

	// ErrPoolRequired is returned when a worker pool is not provided.
	ErrPoolRequired = errors.New("worker pool required")

	// ErrExtractorRequired is returned when an entity extractor is not provided.
	ErrExtractorRequired = errors.New("entity extractor required")

	// ErrEmptyDocument is returned when the loaded document contains no text.
	ErrEmptyDocument = errors.New("document has no content")
)
