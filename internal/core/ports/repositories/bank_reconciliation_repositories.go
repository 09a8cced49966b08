package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
)

// BankAccountReader defines read operations for bank accounts and their transactions
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts ordered by name.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// ListTransactions returns one side of an account's transactions ordered by date.
	ListTransactions(ctx context.Context, bankAccountID string, side domain.TransactionSide) ([]domain.BankTransaction, error)
}

// BankAccountWriter defines write operations for bank accounts and their transactions
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// SaveTransactions appends book entries or statement lines.
	SaveTransactions(ctx context.Context, txns []domain.BankTransaction) error

	// UpdateMatches writes the status and counterpart of each given transaction.
	UpdateMatches(ctx context.Context, txns []domain.BankTransaction) error

	// MarkReconciled sets the last reconciled time of an account.
	MarkReconciled(ctx context.Context, bankAccountID string, at time.Time) error
}

// BankReconciliationRepositoryFacade combines all bank reconciliation repository interfaces
type BankReconciliationRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
