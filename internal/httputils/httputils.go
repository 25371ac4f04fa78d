// Package httputils provides utilities for HTTP requests.
package httputils

import (
	"context"

	"github.com/gin-gonic/gin"
)

type httputilsContextKey string

const (
	// contextKeyClient is the key for the calling client name in the context.
	contextKeyClient httputilsContextKey = "httputils:client"
)

// ClientMiddleware puts the User-Agent header into the context so the
// deletion log line records which client asked for the deletion.
func ClientMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		newCtx := context.WithValue(c.Request.Context(), contextKeyClient, c.GetHeader("User-Agent"))
		c.Request = c.Request.WithContext(newCtx)
		c.Next()
	}
}

// GetClientName returns the calling client name from the context.
func GetClientName(ctx context.Context) string {
	if client, ok := ctx.Value(contextKeyClient).(string); ok {
		return client
	}

	return "!not-standard-path!"
}
