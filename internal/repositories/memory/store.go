// Package memory holds in-process repositories. They back the service when no database
// is configured and serve as fakes in service tests. Every write method is atomic under a
// single mutex, mirroring the transactional guarantees of the Postgres repositories.
package memory

import (
	"sync"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
)

// Store implements every repository port over plain maps.
type Store struct {
	mu sync.RWMutex

	customers     map[string]domain.Customer
	customerOrder []string
	ledgers       map[string]domain.Ledger
	ledgerOrder   []string
	auditLogs     []domain.AuditLogEntry
	accounts      map[string]domain.BankAccount
	transactions  map[string]domain.BankTransaction
	txnOrder      []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		customers:    map[string]domain.Customer{},
		ledgers:      map[string]domain.Ledger{},
		accounts:     map[string]domain.BankAccount{},
		transactions: map[string]domain.BankTransaction{},
	}
}

// NewRepositoryProvider returns a provider whose repositories all share one store.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo: s,
		LedgerRepo:   s,
		AuditLogRepo: s,
		BankRepo:     s,
	}
}

var (
	_ portsrepo.CustomerRepositoryFacade           = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade             = (*Store)(nil)
	_ portsrepo.AuditLogRepositoryFacade           = (*Store)(nil)
	_ portsrepo.BankReconciliationRepositoryFacade = (*Store)(nil)
)

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]T(nil), items[offset:end]...)
}
