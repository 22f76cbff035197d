package storage

import (
	"context"
	"time"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// RunRepository provides operations for managing extraction run history.
type RunRepository interface {
	Repository

	// AddRun appends a completed extraction run.
	// A zero Id is derived from the URL and timestamp; a zero CreatedAt is
	// set to the current time. Returns the run with both populated.
	AddRun(ctx context.Context, run *core.ExtractionRun) (*core.ExtractionRun, error)

	// GetRun retrieves a single run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id core.ID) (*core.ExtractionRun, error)

	// GetRunsByURL retrieves all runs recorded for a URL, oldest first.
	GetRunsByURL(ctx context.Context, url string) ([]*core.ExtractionRun, error)

	// LatestRunForURL retrieves the most recent run recorded for a URL.
	// Returns ErrNotFound if the URL has never been processed.
	LatestRunForURL(ctx context.Context, url string) (*core.ExtractionRun, error)

	// GetRecentRuns retrieves the N most recent runs, newest first.
	GetRecentRuns(ctx context.Context, limit int) ([]*core.ExtractionRun, error)

	// GetRunsByDateRange retrieves runs within a time range.
	// Returns runs where start <= CreatedAt < end, ordered by CreatedAt.
	GetRunsByDateRange(ctx context.Context, start, end time.Time) ([]*core.ExtractionRun, error)

	// DeleteRuns removes runs by their IDs.
	// Returns ErrNotFound if any run doesn't exist.
	DeleteRuns(ctx context.Context, ids ...core.ID) error
}
