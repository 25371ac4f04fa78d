package cli

import (
	"context"

	"github.com/quirzy/backend/internal/account"
)

// DeleteAccount verifies ownership of the account and irreversibly
// deletes it. The verification rules are the same as the HTTP endpoint.
func (c *Context) DeleteAccount(ctx context.Context, req account.VerifyRequest) error {
	return c.accounts.DeleteAccount(ctx, req)
}
