package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is read context for reconciliation math.
type BankAccount struct {
	BankAccountID      string          `json:"bankAccountID"`
	Name               string          `json:"name"`
	AccountNumber      string          `json:"accountNumber"`
	BankName           string          `json:"bankName"`
	Currency           string          `json:"currency"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	CurrentBookBalance decimal.Decimal `json:"currentBookBalance"`
	LastReconciled     *time.Time      `json:"lastReconciled,omitempty"`
}

// TransactionSide tells which list a reconciliation transaction belongs to.
type TransactionSide string

const (
	SideBook TransactionSide = "BOOK"
	SideBank TransactionSide = "BANK"
)

// ReconciliationStatus is Unmatched until the transaction is paired with its counterpart.
type ReconciliationStatus string

const (
	StatusUnmatched ReconciliationStatus = "Unmatched"
	StatusMatched   ReconciliationStatus = "Matched"
)

// BankTransaction is a book entry or a bank-statement line. Normally exactly one of
// Debit/Credit is non-zero. MatchedWith holds the id of the counterpart in the other list.
type BankTransaction struct {
	TransactionID string               `json:"transactionID"`
	BankAccountID string               `json:"bankAccountID"`
	Side          TransactionSide      `json:"side"`
	Date          time.Time            `json:"date"`
	Description   string               `json:"description"`
	Debit         decimal.Decimal      `json:"debit"`
	Credit        decimal.Decimal      `json:"credit"`
	Status        ReconciliationStatus `json:"status"`
	MatchedWith   string               `json:"matchedWith,omitempty"`
}

// IsMatched reports whether the transaction is paired.
func (t BankTransaction) IsMatched() bool {
	return t.Status == StatusMatched
}
