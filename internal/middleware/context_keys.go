package middleware

import (
	"context"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is unexported so values set here cannot collide with other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	sessionKey   = contextKey("session")
)

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session domain.SessionContext) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromCtx retrieves the authenticated session from a standard context.
func GetSessionFromCtx(ctx context.Context) (domain.SessionContext, bool) {
	session, ok := ctx.Value(sessionKey).(domain.SessionContext)
	return session, ok
}

// GetSessionFromContext retrieves the authenticated session from the Gin request.
func GetSessionFromContext(c *gin.Context) (domain.SessionContext, bool) {
	return GetSessionFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin request.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	session, ok := GetSessionFromContext(c)
	if !ok || session.UserID == "" {
		return "", false
	}
	return session.UserID, true
}
