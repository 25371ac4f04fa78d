// Package store owns the Postgres connection pool and the transaction
// discipline every deletion request runs under.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/exaring/otelpgx"
	"github.com/hashicorp/go-multierror"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quirzy/backend/internal/config"
)

// TxBeginner opens a transaction. *pgxpool.Pool satisfies it; tests
// substitute their own.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Store struct {
	db   TxBeginner
	pool *pgxpool.Pool
}

// New connects a pgx pool to the configured database and verifies the
// connection with a ping.
func New(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("parse database URI: %w", err)
	}

	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: pool, pool: pool}, nil
}

// NewFromPool wraps an existing pool. Used by tests and the exporter,
// which bring their own pool lifecycle.
func NewFromPool(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, pool: pool}
}

func newWithBeginner(db TxBeginner) *Store {
	return &Store{db: db}
}

// Pool exposes the underlying pool for callers that run plain queries
// outside a deletion transaction (seeding, collectors).
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// WithTx runs fn inside a single transaction. The transaction commits
// only when fn returns nil; every other exit path, including panics and
// caller cancellation, rolls back. Rollback runs detached from the
// caller's context so a disconnected client cannot leave the
// transaction open, and the connection returns to the pool on both
// commit and rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	cleanupCtx := context.WithoutCancel(ctx)

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(cleanupCtx)
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(cleanupCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return multierror.Append(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}

		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if rbErr := tx.Rollback(cleanupCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return multierror.Append(
				fmt.Errorf("commit transaction: %w", err),
				fmt.Errorf("rollback transaction: %w", rbErr),
			)
		}

		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
