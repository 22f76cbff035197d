package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Backend owns the BadgerDB handle shared by the repositories in this
// package. Run records are small MUS-encoded blobs, so compression is
// disabled.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenBackend opens the database at path, creating the directory when it
// does not exist. With inMemory set, path is ignored and nothing touches
// disk; tests use this mode.
func OpenBackend(path string, inMemory bool) (*Backend, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("database directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path)
	}

	logger := slog.Default().With("component", "badger")
	opts.Logger = &dbLogger{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{db: db, logger: logger}, nil
}

// Close closes the database. Repositories built on this backend are
// unusable afterwards.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed reports whether Close has been called.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx runs fn inside a transaction, read-write when isWrite is set.
// The transaction is discarded unless fn commits it.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// WithTransaction implements the storage.Repository transaction contract:
// fn runs inside a read-write transaction that commits only when fn
// returns nil.
func (b *Backend) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return b.WithTx(func(tx *badger.Txn) error {
		if err := fn(ctx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// dbLogger routes badger's internal logging through slog.
type dbLogger struct {
	logger *slog.Logger
}

var _ badger.Logger = (*dbLogger)(nil)

func (l *dbLogger) Errorf(msg string, args ...any)   { l.logger.Error(fmt.Sprintf(msg, args...)) }
func (l *dbLogger) Warningf(msg string, args ...any) { l.logger.Warn(fmt.Sprintf(msg, args...)) }
func (l *dbLogger) Infof(msg string, args ...any)    { l.logger.Info(fmt.Sprintf(msg, args...)) }
func (l *dbLogger) Debugf(msg string, args ...any)   { l.logger.Debug(fmt.Sprintf(msg, args...)) }
