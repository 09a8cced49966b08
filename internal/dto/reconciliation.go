package dto

import (
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/reconciliation"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
type CreateBankAccountRequest struct {
	Name               string          `json:"name" binding:"required"`
	AccountNumber      string          `json:"accountNumber" binding:"required"`
	BankName           string          `json:"bankName" binding:"required"`
	Currency           string          `json:"currency" binding:"required,len=3"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	CurrentBookBalance decimal.Decimal `json:"currentBookBalance"`
}

// ListBankAccountsResponse wraps the list of bank accounts.
type ListBankAccountsResponse struct {
	BankAccounts []domain.BankAccount `json:"bankAccounts"`
}

// ReconciliationResponse is the full state of a reconciliation screen.
type ReconciliationResponse struct {
	Account domain.BankAccount       `json:"account"`
	Book    []domain.BankTransaction `json:"book"`
	Bank    []domain.BankTransaction `json:"bank"`
	Summary reconciliation.Summary   `json:"summary"`
}

// ManualMatchRequest pairs one book entry with one bank line.
type ManualMatchRequest struct {
	BookID string `json:"bookID" binding:"required"`
	BankID string `json:"bankID" binding:"required"`
}

// ManualMatchResponse reports whether the pair was made and the resulting state.
type ManualMatchResponse struct {
	Matched bool                   `json:"matched"`
	Session ReconciliationResponse `json:"session"`
}

// AutoMatchResponse lists the pairs made and the resulting state.
type AutoMatchResponse struct {
	Pairs   []reconciliation.Pair  `json:"pairs"`
	Session ReconciliationResponse `json:"session"`
}

// StatementLine is one parsed row of an uploaded statement.
type StatementLine struct {
	Row         int             `validate:"-"`
	Date        time.Time       `validate:"required"`
	Description string          `validate:"max=500"`
	Debit       decimal.Decimal `validate:"-"`
	Credit      decimal.Decimal `validate:"-"`
}

// ImportStatementResponse reports how many lines were appended.
type ImportStatementResponse struct {
	BankAccountID string                 `json:"bankAccountID"`
	Side          domain.TransactionSide `json:"side"`
	Imported      int                    `json:"imported"`
}

// ToReconciliationResponse builds the screen state from a session.
func ToReconciliationResponse(s reconciliation.Session) ReconciliationResponse {
	return ReconciliationResponse{
		Account: s.Account,
		Book:    s.Book,
		Bank:    s.Bank,
		Summary: reconciliation.Summarize(s),
	}
}
