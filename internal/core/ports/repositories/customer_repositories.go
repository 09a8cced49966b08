package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerReader defines read operations for customer data. Soft-deleted customers are
// never returned.
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers ordered by name.
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)

	// ListAllCustomers retrieves every active customer, used as the working set for sync and merge.
	ListAllCustomers(ctx context.Context) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data. Every method is atomic:
// the customer rows, any ledgers and the audit entries are written together or not at all.
type CustomerWriter interface {
	// SaveCustomer persists a new customer, its new ledger (if any) and the audit entries.
	SaveCustomer(ctx context.Context, customer domain.Customer, ledger *domain.Ledger, entries []domain.AuditLogEntry) error

	// ApplyLedgerSync links updated customers, inserts new ledgers and records the sync log.
	ApplyLedgerSync(ctx context.Context, updated []domain.Customer, newLedgers []domain.Ledger, entries []domain.AuditLogEntry) error

	// ApplyMerge soft-deletes the merged customers and adjusts ledger balances.
	ApplyMerge(ctx context.Context, merge MergeChanges) error

	// SoftDeleteCustomer marks a customer as deleted.
	SoftDeleteCustomer(ctx context.Context, customerID string, userID string, now time.Time, entry domain.AuditLogEntry) error
}

// LedgerBalance is a new opening balance for a ledger.
type LedgerBalance struct {
	LedgerID    string
	Amount      decimal.Decimal
	BalanceType domain.BalanceType
}

// MergeChanges is everything a merge writes.
type MergeChanges struct {
	PrimaryID string
	MergedIDs []string
	// Balances to set, typically the primary ledger's consolidated balance and zeroed
	// secondary ledgers.
	Balances []LedgerBalance
	UserID   string
	Now      time.Time
	Entry    domain.AuditLogEntry
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
