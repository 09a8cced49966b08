package services

import (
	"context"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
)

// BankAccountSvc manages bank accounts
type BankAccountSvc interface {
	ListBankAccounts(ctx context.Context, session domain.SessionContext) ([]domain.BankAccount, error)
	CreateBankAccount(ctx context.Context, session domain.SessionContext, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)
}

// ReconciliationSvc runs reconciliation sessions
type ReconciliationSvc interface {
	// GetSession loads the account's book entries and statement lines with a summary.
	GetSession(ctx context.Context, session domain.SessionContext, bankAccountID string) (*dto.ReconciliationResponse, error)

	// ManualMatch pairs one book entry with one bank line. An invalid selection is a no-op.
	ManualMatch(ctx context.Context, session domain.SessionContext, bankAccountID string, req dto.ManualMatchRequest) (*dto.ManualMatchResponse, error)

	// AutoMatch pairs entries with equal amounts, greedily in list order.
	AutoMatch(ctx context.Context, session domain.SessionContext, bankAccountID string) (*dto.AutoMatchResponse, error)

	// FinishReconciliation closes the session when nothing is left to reconcile.
	FinishReconciliation(ctx context.Context, session domain.SessionContext, bankAccountID string) (*domain.BankAccount, error)
}

// ReconciliationSvcFacade combines bank account and reconciliation services
type ReconciliationSvcFacade interface {
	BankAccountSvc
	ReconciliationSvc
}
