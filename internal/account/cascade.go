package account

import (
	"context"
	"fmt"

	"github.com/quirzy/backend/internal/metrics"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// deleteStep removes one entity's rows, keyed by the account id.
type deleteStep struct {
	entity string
	query  string
}

// cascadeSteps is the full deletion plan. Children go before parents
// so the foreign keys never dangle: questions before their quizzes,
// everything before the account row. The first three steps are
// mutually independent; the order of the last three is load-bearing.
var cascadeSteps = []deleteStep{
	{
		entity: "challenge",
		query:  `DELETE FROM challenge WHERE challenger_id = $1 OR opponent_id = $1`,
	},
	{
		entity: "quiz_result",
		query:  `DELETE FROM quiz_result WHERE account_id = $1`,
	},
	{
		entity: "account_settings",
		query:  `DELETE FROM account_settings WHERE account_id = $1`,
	},
	{
		entity: "question",
		query:  `DELETE FROM question WHERE quiz_id IN (SELECT id FROM owned_quiz WHERE account_id = $1)`,
	},
	{
		entity: "owned_quiz",
		query:  `DELETE FROM owned_quiz WHERE account_id = $1`,
	},
	{
		entity: "account",
		query:  `DELETE FROM account WHERE id = $1`,
	},
}

// CascadeOrder lists the entities in the order the cascade removes
// them.
func CascadeOrder() []string {
	return lo.Map(cascadeSteps, func(step deleteStep, _ int) string {
		return step.entity
	})
}

// DeleteGraph removes every record referencing the account, then the
// account itself, on the given transaction. Steps matching zero rows
// are fine; the first storage error aborts the plan so the coordinator
// can roll everything back.
func DeleteGraph(ctx context.Context, db DBTX, accountID int64) error {
	ctx, span := tracer.Start(ctx, "account.DeleteGraph",
		trace.WithAttributes(
			attribute.Int64("account.id", accountID),
		))
	defer span.End()

	for _, step := range cascadeSteps {
		tag, err := db.Exec(ctx, step.query, accountID)
		if err != nil {
			span.SetStatus(otelcodes.Error, "Cascade step failed")
			span.RecordError(err)
			return fmt.Errorf("delete %s rows: %w", step.entity, err)
		}

		metrics.RecordRowsDeleted(step.entity, tag.RowsAffected())
		span.SetAttributes(attribute.Int64("delete.rows."+step.entity, tag.RowsAffected()))
	}

	span.SetStatus(otelcodes.Ok, "Account graph deleted")
	return nil
}
