package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is the bank_accounts row.
type BankAccount struct {
	BankAccountID      string          `db:"bank_account_id"`
	Name               string          `db:"name"`
	AccountNumber      string          `db:"account_number"`
	BankName           string          `db:"bank_name"`
	Currency           string          `db:"currency"`
	OpeningBalance     decimal.Decimal `db:"opening_balance"`
	CurrentBookBalance decimal.Decimal `db:"current_book_balance"`
	LastReconciled     *time.Time      `db:"last_reconciled"`
}

// BankTransaction is a reconciliation_transactions row, either side.
type BankTransaction struct {
	TransactionID string          `db:"transaction_id"`
	BankAccountID string          `db:"bank_account_id"`
	Side          string          `db:"side"`
	TxnDate       time.Time       `db:"txn_date"`
	Description   string          `db:"description"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Status        string          `db:"status"`
	MatchedWith   *string         `db:"matched_with"`
}
