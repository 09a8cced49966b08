package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Permissions portssvc.PermissionSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Authorize checks that the session's role grants perm. Without a permission service every
// call is denied.
func (s *BaseService) Authorize(ctx context.Context, session domain.SessionContext, perm domain.Permission) error {
	if s.Permissions == nil {
		s.LogError(ctx, errNoPermissionService, "Permission check without a permission service",
			slog.String("permission", string(perm)))
		return errNoPermissionService
	}
	if err := s.Permissions.Authorize(session, perm); err != nil {
		s.LogInfo(ctx, "Permission denied",
			slog.String("user_id", session.UserID),
			slog.String("role", string(session.Role)),
			slog.String("permission", string(perm)))
		return err
	}
	return nil
}
