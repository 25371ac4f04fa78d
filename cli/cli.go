// Package cli provides the CLI service for the backend.
package cli

import (
	"github.com/quirzy/backend/internal/account"
	"github.com/quirzy/backend/internal/store"
)

// Context is the context for the CLI.
type Context struct {
	store    *store.Store
	accounts *account.Context
}

// NewContext creates a new Context.
func NewContext(store *store.Store, accounts *account.Context) *Context {
	return &Context{
		store:    store,
		accounts: accounts,
	}
}
