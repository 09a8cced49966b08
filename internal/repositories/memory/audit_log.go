package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_recon_app/internal/utils/pagination"
)

func (s *Store) SaveAuditLogs(_ context.Context, entries []domain.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditLogs = append(s.auditLogs, entries...)
	return nil
}

// ListAuditLogs orders by (timestamp, id) descending. The token is the position of the
// last entry of the previous page.
func (s *Store) ListAuditLogs(_ context.Context, filter portsrepo.AuditLogFilter, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	s.mu.RLock()
	entries := make([]domain.AuditLogEntry, 0, len(s.auditLogs))
	for _, e := range s.auditLogs {
		if matchesFilter(e, filter) {
			entries = append(entries, e)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool { return newerThan(entries[i], entries[j]) })

	if nextToken != nil && *nextToken != "" {
		ts, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("Invalid pagination token")
		}
		cursor := domain.AuditLogEntry{Timestamp: ts, ID: id}
		start := sort.Search(len(entries), func(i int) bool { return newerThan(cursor, entries[i]) })
		entries = entries[start:]
	}

	if limit <= 0 || len(entries) <= limit {
		return entries, nil, nil
	}
	entries = entries[:limit]
	last := entries[limit-1]
	token := pagination.EncodeCursor(last.Timestamp, last.ID)
	return entries, &token, nil
}

func newerThan(a, b domain.AuditLogEntry) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID > b.ID
}

func matchesFilter(e domain.AuditLogEntry, f portsrepo.AuditLogFilter) bool {
	return (f.Action == "" || e.Action == f.Action) &&
		(f.Entity == "" || e.Entity == f.Entity) &&
		(f.Status == "" || e.Status == f.Status)
}
