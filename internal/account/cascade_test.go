package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeOrder(t *testing.T) {
	// questions must go before their quizzes, and the account row last
	assert.Equal(t, []string{
		"challenge",
		"quiz_result",
		"account_settings",
		"question",
		"owned_quiz",
		"account",
	}, CascadeOrder())
}

func TestDeleteGraph(t *testing.T) {
	ctx := context.Background()

	t.Run("executes every step in plan order, keyed by the account id", func(t *testing.T) {
		db := &fakeDB{rowsPerExec: 2}

		require.NoError(t, DeleteGraph(ctx, db, 42))

		require.Len(t, db.execQueries, len(cascadeSteps))
		for i, step := range cascadeSteps {
			assert.Equal(t, step.query, db.execQueries[i])
			assert.Equal(t, []any{int64(42)}, db.execArgs[i])
		}
	})

	t.Run("zero matching rows is not an error", func(t *testing.T) {
		db := &fakeDB{rowsPerExec: 0}

		require.NoError(t, DeleteGraph(ctx, db, 42))
		assert.Len(t, db.execQueries, len(cascadeSteps))
	})

	t.Run("a failing step aborts the plan immediately", func(t *testing.T) {
		db := &fakeDB{failOn: "question"}

		err := DeleteGraph(ctx, db, 42)

		require.Error(t, err)
		assert.ErrorContains(t, err, "delete question rows")

		// the three independent steps ran, nothing after the fault did
		require.Len(t, db.execQueries, 3)
		assert.Equal(t, cascadeSteps[0].query, db.execQueries[0])
		assert.Equal(t, cascadeSteps[2].query, db.execQueries[2])
	})
}
