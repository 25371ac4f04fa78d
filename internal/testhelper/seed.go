package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AccountFixture is a fully populated deletion graph: one account with
// a quiz (two questions), a result, settings, and challenges in both
// roles against a second account.
type AccountFixture struct {
	AccountID   int64
	OpponentID  int64
	QuizID      int64
	QuestionIDs []int64
}

// SeedAccountGraph inserts the fixture. A non-empty password is stored
// as a bcrypt hash; an empty password creates an external-auth account
// with a NULL credential.
func SeedAccountGraph(t *testing.T, pool *pgxpool.Pool, email, name, password string) AccountFixture {
	t.Helper()
	ctx := context.Background()

	var hash *string
	if password != "" {
		raw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		s := string(raw)
		hash = &s
	}

	var fx AccountFixture

	err := pool.QueryRow(ctx,
		`INSERT INTO account (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		email, name, hash,
	).Scan(&fx.AccountID)
	if err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO account (email, name) VALUES ($1, $2) RETURNING id`,
		"rival-of-"+email, "Rival "+name,
	).Scan(&fx.OpponentID)
	if err != nil {
		t.Fatalf("failed to seed opponent account: %v", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO owned_quiz (account_id, title) VALUES ($1, 'General Knowledge') RETURNING id`,
		fx.AccountID,
	).Scan(&fx.QuizID)
	if err != nil {
		t.Fatalf("failed to seed quiz: %v", err)
	}

	for _, prompt := range []string{"What is the capital of France?", "What is 6 times 7?"} {
		var questionID int64
		err = pool.QueryRow(ctx,
			`INSERT INTO question (quiz_id, prompt, answer) VALUES ($1, $2, 'placeholder') RETURNING id`,
			fx.QuizID, prompt,
		).Scan(&questionID)
		if err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
		fx.QuestionIDs = append(fx.QuestionIDs, questionID)
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO quiz_result (account_id, score) VALUES ($1, 87)`, fx.AccountID,
	); err != nil {
		t.Fatalf("failed to seed quiz result: %v", err)
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO account_settings (account_id) VALUES ($1)`, fx.AccountID,
	); err != nil {
		t.Fatalf("failed to seed account settings: %v", err)
	}

	// the account appears once on each side of a challenge
	if _, err := pool.Exec(ctx,
		`INSERT INTO challenge (challenger_id, opponent_id) VALUES ($1, $2), ($2, $1)`,
		fx.AccountID, fx.OpponentID,
	); err != nil {
		t.Fatalf("failed to seed challenges: %v", err)
	}

	return fx
}

// CountReferencing counts the rows in every deletion-graph table that
// still reference the account.
func CountReferencing(t *testing.T, pool *pgxpool.Pool, accountID int64) map[string]int {
	t.Helper()
	ctx := context.Background()

	queries := map[string]string{
		"account":          `SELECT count(*) FROM account WHERE id = $1`,
		"owned_quiz":       `SELECT count(*) FROM owned_quiz WHERE account_id = $1`,
		"question":         `SELECT count(*) FROM question WHERE quiz_id IN (SELECT id FROM owned_quiz WHERE account_id = $1)`,
		"quiz_result":      `SELECT count(*) FROM quiz_result WHERE account_id = $1`,
		"account_settings": `SELECT count(*) FROM account_settings WHERE account_id = $1`,
		"challenge":        `SELECT count(*) FROM challenge WHERE challenger_id = $1 OR opponent_id = $1`,
	}

	counts := make(map[string]int, len(queries))
	for table, query := range queries {
		var n int
		if err := pool.QueryRow(ctx, query, accountID).Scan(&n); err != nil {
			t.Fatalf("failed to count %s rows: %v", table, err)
		}
		counts[table] = n
	}

	return counts
}

// TotalRows counts all rows of a table.
func TotalRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), fmt.Sprintf(`SELECT count(*) FROM %s`, table)).Scan(&n); err != nil {
		t.Fatalf("failed to count %s rows: %v", table, err)
	}

	return n
}
