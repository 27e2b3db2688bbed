package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/migrations"
)

// DB is the SQLite-backed SyncStore.
type DB struct {
	*sql.DB
	counter *UpdateCounter
	logger  *logger.Logger
}

// NewDB wraps an open connection. The caller still has to Migrate.
func NewDB(conn *sql.DB, log *logger.Logger) *DB {
	return &DB{
		DB:      conn,
		counter: new(UpdateCounter),
		logger:  log,
	}
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

func (db *DB) UpdateCount(providerID int64) int64 {
	return db.counter.Get(providerID)
}

func (db *DB) CheckUpdateCount(providerID, count int64) bool {
	return db.counter.Check(providerID, count)
}

// WithTx implements SyncStore.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context, q Queries) error) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.WithTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			log.Err(commitErr).Str("func", "DB.WithTx").Msg("failed to commit transaction")
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}
	}()

	return fn(ctx, &queries{tx: tx, counter: db.counter})
}

// dbtx is the subset of *sql.Tx used by the repositories.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries implements Queries on top of one transaction.
type queries struct {
	tx      dbtx
	counter *UpdateCounter
}

// exec runs a mutation and bumps the provider's update counter. A zero
// providerID leaves the counters alone.
func (q *queries) exec(ctx context.Context, providerID int64, query string, args ...any) (sql.Result, error) {
	res, err := q.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if providerID > 0 {
		q.counter.Incr(providerID)
	}
	return res, nil
}

// execFile runs a mutation of a single file row. The query must return the
// row's provider_id; that provider's counter is bumped. A missing row is a
// no-op.
func (q *queries) execFile(ctx context.Context, query string, args ...any) error {
	var providerID int64
	err := q.tx.QueryRowContext(ctx, query, args...).Scan(&providerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	q.counter.Incr(providerID)
	return nil
}
