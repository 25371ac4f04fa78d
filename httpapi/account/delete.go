package accountservice

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quirzy/backend/internal/account"
	"github.com/quirzy/backend/internal/httputils"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
)

// DeleteAccount verifies the caller owns the account and deletes it with
// everything attached to it, all within one transaction.
//
// POST /api/account/delete
func (s *AccountService) DeleteAccount(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "accountservice.DeleteAccount")
	defer span.End()

	var req account.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Email is required",
		})
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Email is required",
		})
		return
	}

	span.SetAttributes(attribute.String("account.verification_method", req.Method))

	if err := s.accounts.DeleteAccount(ctx, req); err != nil {
		var verr account.Error
		if errors.As(err, &verr) {
			span.SetStatus(otelcodes.Error, verr.Message)
			c.JSON(verr.HTTPStatus(), gin.H{
				"error": verr.Message,
			})
			return
		}

		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "deletion failed")
		slog.Error("account deletion failed",
			"error", err,
			"client", httputils.GetClientName(ctx))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Server error during deletion",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
