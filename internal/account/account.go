// Package account implements verified, irreversible account deletion:
// the caller proves control of an account, then the account and every
// record referencing it are removed in one transaction.
package account

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quirzy/backend/internal/auth"
	"github.com/quirzy/backend/internal/events"
	"github.com/quirzy/backend/internal/store"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("quirzy.account")

// DBTX is the storage capability the verifier and the cascade planner
// run against. pgx.Tx and *pgxpool.Pool both satisfy it; handing a
// transaction in keeps verification reads and cascade writes on the
// same snapshot.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Context bundles the dependencies of the deletion operation.
// sessions and events may be nil; the corresponding post-commit step
// is skipped.
type Context struct {
	store    *store.Store
	sessions auth.Storage
	events   *events.Service
}

func NewContext(store *store.Store, sessions auth.Storage, events *events.Service) *Context {
	return &Context{
		store:    store,
		sessions: sessions,
		events:   events,
	}
}
