package models

import "github.com/shopspring/decimal"

// Ledger is the ledgers row. Contact columns are all NULL when the ledger has no contact meta.
type Ledger struct {
	LedgerID       string          `db:"ledger_id"`
	Name           string          `db:"name"`
	Code           string          `db:"code"`
	LedgerGroup    string          `db:"ledger_group"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	BalanceType    string          `db:"balance_type"`
	GSTApplicable  bool            `db:"gst_applicable"`
	ContactEmail   *string         `db:"contact_email"`
	ContactPhone   *string         `db:"contact_phone"`
	ContactAddress *string         `db:"contact_address"`
	ContactGSTIN   *string         `db:"contact_gstin"`
	AuditFields
}
