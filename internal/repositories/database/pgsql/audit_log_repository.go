package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_recon_app/internal/models"
	"github.com/SscSPs/ledger_recon_app/internal/utils/mapping"
	"github.com/SscSPs/ledger_recon_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for the audit trail.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

func (r *PgxAuditLogRepository) SaveAuditLogs(ctx context.Context, entries []domain.AuditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return insertAuditLogs(ctx, tx, entries)
	})
}

// ListAuditLogs pages newest first on (logged_at, audit_log_id).
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, filter portsrepo.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	query := `
		SELECT audit_log_id, logged_at, action, entity, description, status, details, user_id
		FROM audit_logs
		WHERE TRUE`
	args := []any{}

	if filter.Action != "" {
		args = append(args, string(filter.Action))
		query += " AND action = $" + strconv.Itoa(len(args))
	}
	if filter.Entity != "" {
		args = append(args, string(filter.Entity))
		query += " AND entity = $" + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		ts, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("Invalid pagination token")
		}
		args = append(args, ts, id)
		query += fmt.Sprintf(" AND (logged_at, audit_log_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	query += " ORDER BY logged_at DESC, audit_log_id DESC"
	if limit > 0 {
		// One extra row tells whether another page exists.
		args = append(args, limit+1)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit logs", err)
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.ID, &m.Timestamp, &m.Action, &m.Entity, &m.Description, &m.Status, &m.Details, &m.UserID); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan audit log", err)
		}
		entries = append(entries, mapping.ToDomainAuditLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating audit logs", err)
	}

	if limit <= 0 || len(entries) <= limit {
		return entries, nil, nil
	}
	entries = entries[:limit]
	last := entries[limit-1]
	token := pagination.EncodeCursor(last.Timestamp, last.ID)
	return entries, &token, nil
}
