package repositories

import (
	"context"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
)

// LedgerReader defines read operations for ledger data
type LedgerReader interface {
	// FindLedgerByID retrieves a specific ledger by its unique identifier.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// FindLedgersByIDs retrieves multiple ledgers keyed by id. Unknown ids are absent from the map.
	FindLedgersByIDs(ctx context.Context, ledgerIDs []string) (map[string]domain.Ledger, error)

	// ListLedgers retrieves a paginated list of ledgers ordered by name.
	ListLedgers(ctx context.Context, limit int, offset int) ([]domain.Ledger, error)

	// ListAllLedgers retrieves every ledger in creation order. This is the matching pool.
	ListAllLedgers(ctx context.Context) ([]domain.Ledger, error)
}

// LedgerWriter defines write operations for ledger data
type LedgerWriter interface {
	// SaveLedger persists a new ledger.
	SaveLedger(ctx context.Context, ledger domain.Ledger) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
