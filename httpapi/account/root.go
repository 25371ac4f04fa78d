// accountservice exposes the account lifecycle endpoints.
package accountservice

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/quirzy/backend/httpapi"
	"github.com/quirzy/backend/internal/account"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("quirzy.httpapi.account")

// Deleter verifies the caller's identity and irreversibly removes the
// account with everything attached to it.
type Deleter interface {
	DeleteAccount(ctx context.Context, req account.VerifyRequest) error
}

type AccountService struct {
	accounts Deleter
}

func NewAccountService(accounts Deleter) *AccountService {
	return &AccountService{
		accounts: accounts,
	}
}

func (s *AccountService) Register(router gin.IRouter) {
	group := router.Group("/account")

	group.POST("/delete", s.DeleteAccount)
}

var _ httpapi.Service = (*AccountService)(nil)
