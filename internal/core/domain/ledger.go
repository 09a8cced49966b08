package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerGroup is the fixed chart-of-accounts taxonomy a ledger belongs to.
type LedgerGroup string

const (
	GroupSundryDebtors    LedgerGroup = "Sundry Debtors"
	GroupSundryCreditors  LedgerGroup = "Sundry Creditors"
	GroupBankAccounts     LedgerGroup = "Bank Accounts"
	GroupCashInHand       LedgerGroup = "Cash-in-Hand"
	GroupSalesAccounts    LedgerGroup = "Sales Accounts"
	GroupPurchaseAccounts LedgerGroup = "Purchase Accounts"
	GroupDirectExpenses   LedgerGroup = "Direct Expenses"
	GroupIndirectExpenses LedgerGroup = "Indirect Expenses"
	GroupDirectIncomes    LedgerGroup = "Direct Incomes"
	GroupIndirectIncomes  LedgerGroup = "Indirect Incomes"
	GroupCapitalAccount   LedgerGroup = "Capital Account"
	GroupDutiesAndTaxes   LedgerGroup = "Duties & Taxes"
)

var ledgerGroups = map[LedgerGroup]struct{}{
	GroupSundryDebtors: {}, GroupSundryCreditors: {}, GroupBankAccounts: {}, GroupCashInHand: {},
	GroupSalesAccounts: {}, GroupPurchaseAccounts: {}, GroupDirectExpenses: {}, GroupIndirectExpenses: {},
	GroupDirectIncomes: {}, GroupIndirectIncomes: {}, GroupCapitalAccount: {}, GroupDutiesAndTaxes: {},
}

// IsValid reports whether g is one of the known groups.
func (g LedgerGroup) IsValid() bool {
	_, ok := ledgerGroups[g]
	return ok
}

// BalanceType is the Dr/Cr polarity paired with a non-negative amount.
type BalanceType string

const (
	BalanceDr BalanceType = "Dr"
	BalanceCr BalanceType = "Cr"
)

// ContactMeta holds the contact details used only for customer matching.
type ContactMeta struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

// Ledger is an accounting account record, e.g. a customer's receivable account.
// OpeningBalance is never negative; the sign lives in BalanceType.
type Ledger struct {
	LedgerID       string          `json:"ledgerID"`
	Name           string          `json:"name"`
	Code           string          `json:"code"` // Advisory only, not unique
	Group          LedgerGroup     `json:"group"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	BalanceType    BalanceType     `json:"balanceType"`
	GSTApplicable  bool            `json:"gstApplicable"`
	ContactMeta    *ContactMeta    `json:"contactMeta,omitempty"`
	AuditFields
}

// Contact returns the contact meta or an empty value, never nil.
func (l Ledger) Contact() ContactMeta {
	if l.ContactMeta == nil {
		return ContactMeta{}
	}
	return *l.ContactMeta
}
