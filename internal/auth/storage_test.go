package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenInfo_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		info := TokenInfo{
			AccountID: 1,
			Email:     "jane@example.com",
			Machine:   "test-machine",
		}

		require.NoError(t, info.Validate())
	})

	t.Run("missing account ID", func(t *testing.T) {
		info := TokenInfo{Email: "jane@example.com"}

		assert.ErrorIs(t, info.Validate(), ErrValidationPositiveAccountID)
	})

	t.Run("negative account ID", func(t *testing.T) {
		info := TokenInfo{AccountID: -3, Email: "jane@example.com"}

		assert.ErrorIs(t, info.Validate(), ErrValidationPositiveAccountID)
	})

	t.Run("missing email", func(t *testing.T) {
		info := TokenInfo{AccountID: 1}

		assert.ErrorIs(t, info.Validate(), ErrValidationRequireEmail)
	})
}
