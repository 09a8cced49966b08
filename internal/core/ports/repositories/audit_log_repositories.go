package repositories

import (
	"context"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
)

// AuditLogFilter narrows an audit log listing. Empty fields match everything.
type AuditLogFilter struct {
	Action domain.AuditAction
	Entity domain.AuditEntity
	Status domain.AuditStatus
}

// AuditLogRepositoryFacade stores the append-only audit trail.
type AuditLogRepositoryFacade interface {
	// SaveAuditLogs appends entries.
	SaveAuditLogs(ctx context.Context, entries []domain.AuditLogEntry) error

	// ListAuditLogs returns entries newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListAuditLogs(ctx context.Context, filter AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error)
}
