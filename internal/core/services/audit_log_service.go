package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/utils/spreadsheet"
)

// maxExportRows caps an audit log export.
const maxExportRows = 50000

const exportPageSize = 500

var auditExportHeader = []string{"ID", "Timestamp", "Action", "Entity", "Status", "Description", "Details", "User"}

type auditLogService struct {
	BaseService
	repo portsrepo.AuditLogRepositoryFacade
}

// NewAuditLogService creates the audit log reader.
func NewAuditLogService(repo portsrepo.AuditLogRepositoryFacade, permissions portssvc.PermissionSvc) portssvc.AuditLogSvc {
	return &auditLogService{BaseService: BaseService{Permissions: permissions}, repo: repo}
}

var _ portssvc.AuditLogSvc = (*auditLogService)(nil)

func filterFrom(params dto.ListAuditLogsParams) portsrepo.AuditLogFilter {
	return portsrepo.AuditLogFilter{Action: params.Action, Entity: params.Entity, Status: params.Status}
}

func (s *auditLogService) ListAuditLogs(ctx context.Context, session domain.SessionContext, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	if err := s.Authorize(ctx, session, domain.PermAuditView); err != nil {
		return nil, err
	}

	entries, next, err := s.repo.ListAuditLogs(ctx, filterFrom(params), params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs", slog.Int("limit", params.Limit))
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return &dto.ListAuditLogsResponse{Logs: dto.ToListAuditLogResponse(entries), NextToken: next}, nil
}

func (s *auditLogService) ExportAuditLogs(ctx context.Context, session domain.SessionContext, params dto.ListAuditLogsParams, w io.Writer) error {
	if err := s.Authorize(ctx, session, domain.PermAuditView); err != nil {
		return err
	}

	filter := filterFrom(params)
	var rows [][]any
	var token *string
	for len(rows) < maxExportRows {
		entries, next, err := s.repo.ListAuditLogs(ctx, filter, exportPageSize, token)
		if err != nil {
			s.LogError(ctx, err, "Failed to read audit logs for export", slog.Int("exported", len(rows)))
			return fmt.Errorf("failed to list audit logs: %w", err)
		}
		for _, e := range entries {
			rows = append(rows, []any{
				e.ID, e.Timestamp.UTC().Format(time.RFC3339), string(e.Action), string(e.Entity),
				string(e.Status), e.Description, e.Details, e.User,
			})
		}
		if next == nil {
			break
		}
		token = next
	}
	if len(rows) > maxExportRows {
		rows = rows[:maxExportRows]
	}

	if err := spreadsheet.WriteXLSX(w, "Audit Log", auditExportHeader, rows); err != nil {
		s.LogError(ctx, err, "Failed to write audit log export")
		return fmt.Errorf("failed to write export: %w", err)
	}
	s.LogInfo(ctx, "Audit logs exported", slog.Int("rows", len(rows)))
	return nil
}
