package ai

import "context"

// EntityExtractor extracts structured entities from a fragment of document text.
// Implementations must be thread-safe for concurrent use.
type EntityExtractor interface {
	// ExtractEntities analyzes a text fragment and returns the companies,
	// persons and events it mentions. Returns an empty set if the fragment
	// contains no recognizable entities.
	// Returns an error if the extraction call fails or its output cannot be
	// parsed; the attempt is never retried.
	ExtractEntities(ctx context.Context, text string) (EntitySet, error)
}

// Consolidator cleans and deduplicates the union of entities collected from
// all fragments, and produces a short summary of the document.
// Implementations must be thread-safe for concurrent use.
type Consolidator interface {
	// Consolidate receives the raw per-category entity sets and returns
	// renormalized lists plus a summary. It is invoked at most once per
	// pipeline run and never retried; callers fall back to a plain union
	// merge when it fails.
	Consolidate(ctx context.Context, raw EntitySet) (*Consolidated, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages EntityExtractor and
// Consolidator instances, ensuring they share configuration appropriately.
type AIProvider interface {
	// EntityExtractor returns the fragment extraction service.
	// The returned EntityExtractor is safe for concurrent use.
	EntityExtractor() EntityExtractor

	// Consolidator returns the consolidation service.
	// The returned Consolidator is safe for concurrent use.
	Consolidator() Consolidator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
