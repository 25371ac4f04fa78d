package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/quirzy/backend/internal/account"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

// SeedAccounts creates the given accounts with their quizzes and
// default settings. Accounts that already exist are skipped. The whole
// batch runs in one transaction.
func (c *Context) SeedAccounts(ctx context.Context, records []AccountSeedRecord) error {
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("account seed record #%d: %w", i, err)
		}
	}

	duplicates := lo.FindDuplicatesBy(records, func(r AccountSeedRecord) string {
		return strings.ToLower(r.Email)
	})
	if len(duplicates) > 0 {
		return fmt.Errorf("duplicate emails in seed records: %q", duplicates[0].Email)
	}

	return c.store.WithTx(ctx, func(tx pgx.Tx) error {
		return seedAccounts(ctx, tx, records)
	})
}

func seedAccounts(ctx context.Context, db account.DBTX, records []AccountSeedRecord) error {
	for _, record := range records {
		var existingID int64
		err := db.QueryRow(ctx, `SELECT id FROM account WHERE email = $1`, record.Email).Scan(&existingID)
		if err == nil {
			log.Printf("⚠️ Account %q already exists, skipping creation", record.Email)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("look up account %q: %w", record.Email, err)
		}

		var passwordHash *string
		if record.Password != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(record.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %q: %w", record.Email, err)
			}

			passwordHash = lo.ToPtr(string(hashed))
		}

		var accountID int64
		err = db.QueryRow(ctx,
			`INSERT INTO account (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id`,
			record.Email, record.Name, passwordHash,
		).Scan(&accountID)
		if err != nil {
			return fmt.Errorf("create account %q: %w", record.Email, err)
		}

		if _, err := db.Exec(ctx,
			`INSERT INTO account_settings (account_id) VALUES ($1)`,
			accountID,
		); err != nil {
			return fmt.Errorf("create settings for %q: %w", record.Email, err)
		}

		for _, quiz := range record.Quizzes {
			var quizID int64
			err := db.QueryRow(ctx,
				`INSERT INTO owned_quiz (account_id, title) VALUES ($1, $2) RETURNING id`,
				accountID, quiz.Title,
			).Scan(&quizID)
			if err != nil {
				return fmt.Errorf("create quiz %q for %q: %w", quiz.Title, record.Email, err)
			}

			for _, question := range quiz.Questions {
				if _, err := db.Exec(ctx,
					`INSERT INTO question (quiz_id, prompt, answer) VALUES ($1, $2, $3)`,
					quizID, question.Prompt, question.Answer,
				); err != nil {
					return fmt.Errorf("create question for quiz %q: %w", quiz.Title, err)
				}
			}
		}

		log.Printf("✅ Account %q (%d quizzes) is created", record.Email, len(record.Quizzes))
	}

	return nil
}

type AccountSeedRecord struct {
	Email    string           `json:"email"`
	Name     string           `json:"name"`
	Password string           `json:"password"`
	Quizzes  []QuizSeedRecord `json:"quizzes"`
}

type QuizSeedRecord struct {
	Title     string               `json:"title"`
	Questions []QuestionSeedRecord `json:"questions"`
}

type QuestionSeedRecord struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

func (r AccountSeedRecord) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}

	return nil
}
