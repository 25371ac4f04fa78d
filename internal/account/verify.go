package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/quirzy/backend/models"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

// Verification methods. Anything other than MethodPassword is treated
// as the name method, matching the behavior external-auth users get by
// default.
const (
	MethodPassword = "password"
	MethodName     = "name"
)

// VerifyRequest carries one claimed email and one proof of control.
type VerifyRequest struct {
	Email    string `json:"email"`
	Method   string `json:"method"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Verify confirms the caller controls the account with the claimed
// email and returns its id. It only reads; the caller decides what to
// do with the confirmed identity. Run it on the same transaction as
// the subsequent deletes so both see one snapshot.
func Verify(ctx context.Context, db DBTX, req VerifyRequest) (int64, error) {
	ctx, span := tracer.Start(ctx, "account.Verify",
		trace.WithAttributes(
			attribute.String("account.verify_method", req.Method),
		))
	defer span.End()

	if strings.TrimSpace(req.Email) == "" {
		span.SetStatus(otelcodes.Error, "Missing email")
		return 0, ErrEmailRequired
	}

	// FOR UPDATE serializes concurrent deletions of the same account:
	// the loser blocks here and then sees no row at all.
	var acct models.Account
	err := db.QueryRow(ctx,
		`SELECT id, name, password_hash FROM account WHERE email = $1 FOR UPDATE`,
		req.Email,
	).Scan(&acct.ID, &acct.Name, &acct.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetStatus(otelcodes.Error, "Account not found")
		return 0, ErrAccountNotFound
	}
	if err != nil {
		span.SetStatus(otelcodes.Error, "Failed to look up account")
		span.RecordError(err)
		return 0, fmt.Errorf("look up account: %w", err)
	}

	span.SetAttributes(attribute.Int64("account.id", acct.ID))

	if req.Method == MethodPassword {
		if req.Password == "" {
			span.SetStatus(otelcodes.Error, "Missing password")
			return 0, ErrPasswordRequired
		}

		// Accounts created through Google Sign-In carry no credential
		// and must verify by name instead.
		if acct.PasswordHash == nil || strings.TrimSpace(*acct.PasswordHash) == "" {
			span.SetStatus(otelcodes.Error, "Account has no password credential")
			return 0, ErrNoPasswordCredential
		}

		if err := bcrypt.CompareHashAndPassword([]byte(*acct.PasswordHash), []byte(req.Password)); err != nil {
			span.SetStatus(otelcodes.Error, "Password mismatch")
			return 0, ErrIncorrectPassword
		}
	} else {
		if req.FullName == "" {
			span.SetStatus(otelcodes.Error, "Missing full name")
			return 0, ErrFullNameRequired
		}

		if !namesEqual(acct.Name, req.FullName) {
			span.SetStatus(otelcodes.Error, "Name mismatch")
			return 0, ErrNameMismatch
		}
	}

	span.SetStatus(otelcodes.Ok, "Identity verified")
	return acct.ID, nil
}

func namesEqual(stored, supplied string) bool {
	return strings.EqualFold(strings.TrimSpace(stored), strings.TrimSpace(supplied))
}
