package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
)

func (s *Store) FindLedgerByID(_ context.Context, ledgerID string) (*domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.ledgers[ledgerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (s *Store) FindLedgersByIDs(_ context.Context, ledgerIDs []string) (map[string]domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Ledger, len(ledgerIDs))
	for _, id := range ledgerIDs {
		if l, ok := s.ledgers[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

func (s *Store) ListLedgers(_ context.Context, limit int, offset int) ([]domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.allLedgers()
	sort.SliceStable(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return page(all, limit, offset), nil
}

func (s *Store) ListAllLedgers(_ context.Context) ([]domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allLedgers(), nil
}

func (s *Store) SaveLedger(_ context.Context, ledger domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ledgers[ledger.LedgerID]; exists {
		return apperrors.ErrDuplicate
	}
	s.insertLedger(ledger)
	return nil
}

func (s *Store) allLedgers() []domain.Ledger {
	out := make([]domain.Ledger, 0, len(s.ledgerOrder))
	for _, id := range s.ledgerOrder {
		out = append(out, s.ledgers[id])
	}
	return out
}

// insertLedger expects the write lock to be held.
func (s *Store) insertLedger(l domain.Ledger) {
	s.ledgers[l.LedgerID] = l
	s.ledgerOrder = append(s.ledgerOrder, l.LedgerID)
}
