package services

import (
	"context"
	"io"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
)

// AuditLogSvc reads the audit trail
type AuditLogSvc interface {
	// ListAuditLogs returns a page of entries, newest first.
	ListAuditLogs(ctx context.Context, session domain.SessionContext, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error)

	// ExportAuditLogs writes every entry matching params as an xlsx workbook.
	ExportAuditLogs(ctx context.Context, session domain.SessionContext, params dto.ListAuditLogsParams, w io.Writer) error
}
