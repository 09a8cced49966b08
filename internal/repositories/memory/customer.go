package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
)

func (s *Store) FindCustomerByID(_ context.Context, customerID string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[customerID]
	if !ok || c.IsDeleted() {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListCustomers(_ context.Context, limit int, offset int) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	active := s.activeCustomers()
	sort.SliceStable(active, func(i, j int) bool {
		return strings.ToLower(active[i].Name) < strings.ToLower(active[j].Name)
	})
	return page(active, limit, offset), nil
}

func (s *Store) ListAllCustomers(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeCustomers(), nil
}

func (s *Store) activeCustomers() []domain.Customer {
	out := make([]domain.Customer, 0, len(s.customerOrder))
	for _, id := range s.customerOrder {
		if c := s.customers[id]; !c.IsDeleted() {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) SaveCustomer(_ context.Context, customer domain.Customer, ledger *domain.Ledger, entries []domain.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[customer.CustomerID]; exists {
		return apperrors.ErrDuplicate
	}
	if ledger != nil {
		if _, exists := s.ledgers[ledger.LedgerID]; exists {
			return apperrors.ErrDuplicate
		}
	}
	if customer.HasLedger() && (ledger == nil || ledger.LedgerID != customer.LedgerID) {
		if _, ok := s.ledgers[customer.LedgerID]; !ok {
			return fmt.Errorf("customer %s references unknown ledger %s: %w", customer.CustomerID, customer.LedgerID, apperrors.ErrNotFound)
		}
	}

	if ledger != nil {
		s.insertLedger(*ledger)
	}
	s.customers[customer.CustomerID] = customer
	s.customerOrder = append(s.customerOrder, customer.CustomerID)
	s.auditLogs = append(s.auditLogs, entries...)
	return nil
}

func (s *Store) ApplyLedgerSync(_ context.Context, updated []domain.Customer, newLedgers []domain.Ledger, entries []domain.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range newLedgers {
		if _, exists := s.ledgers[l.LedgerID]; exists {
			return apperrors.ErrDuplicate
		}
	}
	for _, c := range updated {
		if _, ok := s.customers[c.CustomerID]; !ok {
			return fmt.Errorf("customer %s: %w", c.CustomerID, apperrors.ErrNotFound)
		}
	}

	for _, l := range newLedgers {
		s.insertLedger(l)
	}
	for _, c := range updated {
		s.customers[c.CustomerID] = c
	}
	s.auditLogs = append(s.auditLogs, entries...)
	return nil
}

func (s *Store) ApplyMerge(_ context.Context, merge portsrepo.MergeChanges) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[merge.PrimaryID]; !ok {
		return fmt.Errorf("primary customer %s: %w", merge.PrimaryID, apperrors.ErrNotFound)
	}
	for _, id := range merge.MergedIDs {
		if _, ok := s.customers[id]; !ok {
			return fmt.Errorf("merged customer %s: %w", id, apperrors.ErrNotFound)
		}
	}
	for _, b := range merge.Balances {
		if _, ok := s.ledgers[b.LedgerID]; !ok {
			return fmt.Errorf("ledger %s: %w", b.LedgerID, apperrors.ErrNotFound)
		}
	}

	now := merge.Now
	for _, id := range merge.MergedIDs {
		c := s.customers[id]
		c.DeletedAt = &now
		c.MergedIntoID = merge.PrimaryID
		c.Touch(merge.UserID, now)
		s.customers[id] = c
	}
	for _, b := range merge.Balances {
		l := s.ledgers[b.LedgerID]
		l.OpeningBalance = b.Amount
		l.BalanceType = b.BalanceType
		l.Touch(merge.UserID, now)
		s.ledgers[b.LedgerID] = l
	}
	s.auditLogs = append(s.auditLogs, merge.Entry)
	return nil
}

func (s *Store) SoftDeleteCustomer(_ context.Context, customerID string, userID string, now time.Time, entry domain.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[customerID]
	if !ok || c.IsDeleted() {
		return apperrors.ErrNotFound
	}
	c.DeletedAt = &now
	c.Touch(userID, now)
	s.customers[customerID] = c
	s.auditLogs = append(s.auditLogs, entry)
	return nil
}
