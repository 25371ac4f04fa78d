package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/quirzy/backend/internal/metrics"
	"github.com/quirzy/backend/internal/workers"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
)

// deletion request outcomes, as recorded in metrics
const (
	outcomeCommitted = "committed"
	outcomeDenied    = "denied"
	outcomeError     = "error"
)

// DeleteAccount verifies the request and, on success, removes the
// account and all data referencing it in a single transaction. Either
// the whole graph is gone or nothing is.
//
// After the commit it revokes the account's sessions and emits the
// analytics event in the background; both are best-effort and never
// affect the result the caller sees.
func (c *Context) DeleteAccount(ctx context.Context, req VerifyRequest) error {
	ctx, span := tracer.Start(ctx, "account.DeleteAccount")
	defer span.End()

	var accountID int64

	err := c.store.WithTx(ctx, func(tx pgx.Tx) error {
		id, err := Verify(ctx, tx, req)
		if err != nil {
			return err
		}
		accountID = id

		return DeleteGraph(ctx, tx, id)
	})
	if err != nil {
		var verr Error
		if errors.As(err, &verr) {
			metrics.RecordDeletion(outcomeDenied)
			metrics.RecordVerificationFailure(string(verr.Kind))
			span.SetStatus(otelcodes.Error, verr.Message)
			return err
		}

		metrics.RecordDeletion(outcomeError)
		span.SetStatus(otelcodes.Error, "Deletion aborted")
		span.RecordError(err)
		return err
	}

	metrics.RecordDeletion(outcomeCommitted)
	span.SetAttributes(attribute.Int64("account.id", accountID))
	span.SetStatus(otelcodes.Ok, "Account deleted")

	c.afterDelete(accountID)

	return nil
}

// afterDelete runs the post-commit cleanup that must not hold up or
// fail the response: the account is already gone.
func (c *Context) afterDelete(accountID int64) {
	workers.Global.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if c.sessions != nil {
			if err := c.sessions.DeleteByAccount(ctx, accountID); err != nil {
				slog.Error("failed to revoke sessions of deleted account",
					"account_id", accountID, "error", err)
			}
		}

		c.events.AccountDeleted(accountID)
	})
}
