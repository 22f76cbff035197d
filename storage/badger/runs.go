package badger

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) (*RunRepository, error) {
	return &RunRepository{backend: backend}, nil
}

// Close releases repository resources. The backend stays open; callers
// close it separately.
func (r *RunRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RunRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddRun appends a completed extraction run.
func (r *RunRepository) AddRun(ctx context.Context, run *core.ExtractionRun) (*core.ExtractionRun, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.Id == 0 {
		run.Id = core.RunID(run.URL, run.CreatedAt)
	}
	if err := core.ValidateRun(run); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Store primary record
		key := makeRunKey(run.Id)
		if err := tx.Set(key, storage.MarshalExtractionRun(run)); err != nil {
			return err
		}

		// Update date index
		dateKey := makeRunDateKey(run.CreatedAt, run.Id)
		if err := tx.Set(dateKey, storage.MarshalID(run.Id)); err != nil {
			return err
		}

		// Update URL index
		urlKey := makeRunURLKey(run.URL, run.CreatedAt, run.Id)
		if err := tx.Set(urlKey, storage.MarshalID(run.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRun retrieves a single run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.ID) (*core.ExtractionRun, error) {
	var result *core.ExtractionRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readRun(tx, makeRunKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetRunsByURL retrieves all runs recorded for a URL, oldest first.
func (r *RunRepository) GetRunsByURL(ctx context.Context, url string) ([]*core.ExtractionRun, error) {
	partial := makePartialRunURLKey(url)

	var results []*core.ExtractionRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = partial
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(partial); iter.Valid(); iter.Next() {
			run, err := r.readIndexedRun(tx, iter.Item())
			if err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
			}
		}
		return nil
	}, false)

	return results, err
}

// LatestRunForURL retrieves the most recent run recorded for a URL.
func (r *RunRepository) LatestRunForURL(ctx context.Context, url string) (*core.ExtractionRun, error) {
	partial := makePartialRunURLKey(url)

	var result *core.ExtractionRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past the last possible key for this URL, then the first
		// valid key under the partial prefix is the newest run.
		seekKey := append(slices.Clone(partial), 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)

		for iter.Seek(seekKey); iter.Valid(); iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), partial) {
				break
			}
			var err error
			result, err = r.readIndexedRun(tx, iter.Item())
			if err != nil {
				return err
			}
			break
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)

	return result, err
}

// GetRecentRuns retrieves the N most recent runs, newest first.
func (r *RunRepository) GetRecentRuns(ctx context.Context, limit int) ([]*core.ExtractionRun, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.ExtractionRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Start from the end of the date index
		startKey := makePartialRunDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(runDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}
			run, err := r.readIndexedRun(tx, iter.Item())
			if err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRunsByDateRange retrieves runs where start <= CreatedAt < end.
func (r *RunRepository) GetRunsByDateRange(ctx context.Context, start, end time.Time) ([]*core.ExtractionRun, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.ExtractionRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialRunDateKey(start)
		endKey := makePartialRunDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			if bytes.Compare(iter.Item().Key(), endKey) > 0 {
				break
			}
			run, err := r.readIndexedRun(tx, iter.Item())
			if err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteRuns removes runs by their IDs, along with their index entries.
func (r *RunRepository) DeleteRuns(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRunKey(id)

			run, err := r.readRun(tx, key)
			if err != nil {
				return err
			}
			if run == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeRunDateKey(run.CreatedAt, run.Id)); err != nil {
				return err
			}
			if err := tx.Delete(makeRunURLKey(run.URL, run.CreatedAt, run.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readRun reads a run record by key. Returns nil without error when the
// key does not exist.
func (r *RunRepository) readRun(tx *badger.Txn, key []byte) (*core.ExtractionRun, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var run *core.ExtractionRun
	err = item.Value(func(val []byte) error {
		var err error
		run, err = storage.UnmarshalExtractionRun(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// readIndexedRun resolves an index entry to its full run record.
func (r *RunRepository) readIndexedRun(tx *badger.Txn, item *badger.Item) (*core.ExtractionRun, error) {
	var runID core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		runID, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}
	return r.readRun(tx, makeRunKey(runID))
}
