package services

import (
	"context"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
)

// LedgerSvcFacade defines operations on ledgers
type LedgerSvcFacade interface {
	// CreateLedger persists a new ledger.
	CreateLedger(ctx context.Context, session domain.SessionContext, req dto.CreateLedgerRequest) (*domain.Ledger, error)

	// GetLedger retrieves a ledger by id.
	GetLedger(ctx context.Context, session domain.SessionContext, ledgerID string) (*domain.Ledger, error)

	// ListLedgers retrieves a page of ledgers.
	ListLedgers(ctx context.Context, session domain.SessionContext, params dto.ListLedgersParams) ([]domain.Ledger, error)
}
