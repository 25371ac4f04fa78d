package store

import (
	"context"
	"fmt"
)

// Migrate creates the deletion-graph tables. Safe to run repeatedly.
//
// Foreign keys deliberately carry no ON DELETE CASCADE: the cascade is
// executed explicitly by the account package, and a wrongly ordered
// delete should fail a constraint instead of silently widening.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}

	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS account (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS owned_quiz (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL REFERENCES account(id),
		title TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS question (
		id BIGSERIAL PRIMARY KEY,
		quiz_id BIGINT NOT NULL REFERENCES owned_quiz(id),
		prompt TEXT NOT NULL,
		answer TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_result (
		id BIGSERIAL PRIMARY KEY,
		account_id BIGINT NOT NULL REFERENCES account(id),
		score INTEGER NOT NULL,
		taken_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS account_settings (
		account_id BIGINT PRIMARY KEY REFERENCES account(id),
		theme TEXT NOT NULL DEFAULT 'dark',
		email_notifications BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS challenge (
		id BIGSERIAL PRIMARY KEY,
		challenger_id BIGINT NOT NULL REFERENCES account(id),
		opponent_id BIGINT NOT NULL REFERENCES account(id),
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_owned_quiz_account ON owned_quiz(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_question_quiz ON question(quiz_id)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_result_account ON quiz_result(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_challenge_challenger ON challenge(challenger_id)`,
	`CREATE INDEX IF NOT EXISTS idx_challenge_opponent ON challenge(opponent_id)`,
}
