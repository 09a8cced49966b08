package matching

import (
	"strings"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateCustomerInput is the data needed to create a customer and, optionally, its ledger.
type CreateCustomerInput struct {
	Name                 string
	GSTIN                string
	PAN                  string
	Email                string
	Phone                string
	BillingAddress       string
	ShippingAddress      string
	DefaultPaymentTerms  string
	DefaultPlaceOfSupply string

	// ExistingLedgerID links the customer to a known ledger and takes precedence over CreateLedger.
	ExistingLedgerID string
	CreateLedger     bool
	LedgerCode       string // Generated from the name when empty
	OpeningBalance   decimal.Decimal
	BalanceType      domain.BalanceType // Defaults to Dr
}

// CreateCustomerResult holds the new customer and the ledger synthesized for it, if any.
type CreateCustomerResult struct {
	Customer domain.Customer
	Ledger   *domain.Ledger
}

// CreateCustomerWithLedger builds a new customer. The ledger link is decided in order:
// an existing ledger id, a freshly synthesized ledger when CreateLedger is set, or none.
// Nothing is persisted.
func (e *Engine) CreateCustomerWithLedger(input CreateCustomerInput, actingUser string) (CreateCustomerResult, error) {
	if strings.TrimSpace(input.Name) == "" {
		return CreateCustomerResult{}, apperrors.NewValidationError("Customer Name is required")
	}

	now := e.now()
	customer := domain.Customer{
		CustomerID:           e.ids.NewID(),
		Name:                 input.Name,
		GSTIN:                input.GSTIN,
		PAN:                  input.PAN,
		Email:                input.Email,
		Phone:                input.Phone,
		BillingAddress:       input.BillingAddress,
		ShippingAddress:      input.ShippingAddress,
		DefaultPaymentTerms:  input.DefaultPaymentTerms,
		DefaultPlaceOfSupply: input.DefaultPlaceOfSupply,
		AuditFields:          domain.NewAuditFields(actingUser, now),
	}
	if customer.ShippingAddress == "" {
		customer.ShippingAddress = customer.BillingAddress
	}

	switch {
	case input.ExistingLedgerID != "":
		customer.LedgerID = input.ExistingLedgerID
		return CreateCustomerResult{Customer: customer}, nil

	case input.CreateLedger:
		balanceType := input.BalanceType
		if balanceType == "" {
			balanceType = domain.BalanceDr
		}
		if err := accounting.ValidateOpeningBalance(input.OpeningBalance, balanceType); err != nil {
			return CreateCustomerResult{}, apperrors.NewValidationError("Invalid opening balance: " + err.Error())
		}
		ledger := e.newCustomerLedger(customer, input.LedgerCode, input.OpeningBalance, balanceType, actingUser)
		customer.LedgerID = ledger.LedgerID
		return CreateCustomerResult{Customer: customer, Ledger: &ledger}, nil

	default:
		return CreateCustomerResult{Customer: customer}, nil
	}
}

// newCustomerLedger synthesizes the receivable ledger for a customer.
func (e *Engine) newCustomerLedger(c domain.Customer, code string, opening decimal.Decimal, balanceType domain.BalanceType, actingUser string) domain.Ledger {
	if code == "" {
		code = e.GenerateLedgerCode(c.Name)
	}
	return domain.Ledger{
		LedgerID:       e.ids.NewID(),
		Name:           c.Name,
		Code:           code,
		Group:          domain.GroupSundryDebtors,
		OpeningBalance: opening,
		BalanceType:    balanceType,
		GSTApplicable:  c.GSTIN != "",
		ContactMeta: &domain.ContactMeta{
			Email:   c.Email,
			Phone:   c.Phone,
			Address: c.BillingAddress,
			GSTIN:   c.GSTIN,
		},
		AuditFields: domain.NewAuditFields(actingUser, e.now()),
	}
}
