package dto

import (
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MatchCustomerRequest is the customer-like input to match against existing ledgers.
type MatchCustomerRequest struct {
	Name  string `json:"name"`
	GSTIN string `json:"gstin"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// MatchCustomerResponse is the outcome of a ledger match. A miss is not an error.
type MatchCustomerResponse struct {
	MatchFound      bool               `json:"matchFound"`
	Ledger          *LedgerResponse    `json:"ledger,omitempty"`
	Reason          domain.MatchReason `json:"reason,omitempty"`
	SimilarityScore *float64           `json:"similarityScore,omitempty"`
}

// CreateCustomerRequest defines the data needed to create a customer, optionally with a new ledger.
type CreateCustomerRequest struct {
	Name                 string `json:"name" binding:"required"`
	GSTIN                string `json:"gstin" binding:"omitempty,len=15,alphanum"`
	PAN                  string `json:"pan" binding:"omitempty,len=10,alphanum"`
	Email                string `json:"email" binding:"omitempty,email"`
	Phone                string `json:"phone"`
	BillingAddress       string `json:"billingAddress"`
	ShippingAddress      string `json:"shippingAddress"` // Defaults to billingAddress
	DefaultPaymentTerms  string `json:"defaultPaymentTerms"`
	DefaultPlaceOfSupply string `json:"defaultPlaceOfSupply"`

	LedgerID       string             `json:"ledgerID"` // Link an existing ledger; wins over createLedger
	CreateLedger   bool               `json:"createLedger"`
	LedgerCode     string             `json:"ledgerCode"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	BalanceType    domain.BalanceType `json:"balanceType" binding:"omitempty,oneof=Dr Cr"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID           string    `json:"customerID"`
	Name                 string    `json:"name"`
	GSTIN                string    `json:"gstin"`
	PAN                  string    `json:"pan,omitempty"`
	Email                string    `json:"email,omitempty"`
	Phone                string    `json:"phone,omitempty"`
	BillingAddress       string    `json:"billingAddress,omitempty"`
	ShippingAddress      string    `json:"shippingAddress,omitempty"`
	DefaultPaymentTerms  string    `json:"defaultPaymentTerms,omitempty"`
	DefaultPlaceOfSupply string    `json:"defaultPlaceOfSupply,omitempty"`
	LedgerID             string    `json:"ledgerID,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	CreatedBy            string    `json:"createdBy"`
	LastUpdatedAt        time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy        string    `json:"lastUpdatedBy"`
}

// CreateCustomerResponse returns the customer and, when one was created, its ledger.
type CreateCustomerResponse struct {
	Customer CustomerResponse `json:"customer"`
	Ledger   *LedgerResponse  `json:"ledger,omitempty"`
}

// CustomerView is the list/detail projection: the customer plus its ledger's code and
// outstanding balance.
type CustomerView struct {
	CustomerResponse
	LedgerCode         string             `json:"ledgerCode,omitempty"`
	LedgerName         string             `json:"ledgerName,omitempty"`
	OutstandingBalance decimal.Decimal    `json:"outstandingBalance"`
	BalanceType        domain.BalanceType `json:"balanceType"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerView `json:"customers"`
}

// SyncLedgersResponse reports the outcome of a ledger backfill.
type SyncLedgersResponse struct {
	UpdatedCustomers []CustomerResponse `json:"updatedCustomers"`
	NewLedgers       []LedgerResponse   `json:"newLedgers"`
	Logs             []AuditLogResponse `json:"logs"`
}

// MergeCustomersRequest folds secondaryIDs into primaryID.
type MergeCustomersRequest struct {
	PrimaryID     string   `json:"primaryID" binding:"required"`
	SecondaryIDs  []string `json:"secondaryIDs" binding:"required,min=1,dive,required"`
	MergeBalances bool     `json:"mergeBalances"`
}

// MergeCustomersResponse reports the outcome of a merge.
type MergeCustomersResponse struct {
	PrimaryID           string           `json:"primaryID"`
	MergedIDs           []string         `json:"mergedIDs"`
	ConsolidatedBalance decimal.Decimal  `json:"consolidatedBalance"`
	AuditLog            AuditLogResponse `json:"auditLog"`
}

// ImportCustomerRow is one spreadsheet row of a customer import.
type ImportCustomerRow struct {
	Row                  int    `validate:"-"`
	Name                 string `validate:"required"`
	GSTIN                string `validate:"omitempty,len=15,alphanum"`
	PAN                  string `validate:"omitempty,len=10,alphanum"`
	Email                string `validate:"omitempty,email"`
	Phone                string `validate:"omitempty,max=20"`
	BillingAddress       string
	ShippingAddress      string
	DefaultPaymentTerms  string
	DefaultPlaceOfSupply string
}

// ImportResponse summarizes a spreadsheet import.
type ImportResponse struct {
	Imported int                `json:"imported"`
	Skipped  int                `json:"skipped"`
	Failed   int                `json:"failed"`
	Logs     []AuditLogResponse `json:"logs"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:           c.CustomerID,
		Name:                 c.Name,
		GSTIN:                c.GSTIN,
		PAN:                  c.PAN,
		Email:                c.Email,
		Phone:                c.Phone,
		BillingAddress:       c.BillingAddress,
		ShippingAddress:      c.ShippingAddress,
		DefaultPaymentTerms:  c.DefaultPaymentTerms,
		DefaultPlaceOfSupply: c.DefaultPlaceOfSupply,
		LedgerID:             c.LedgerID,
		CreatedAt:            c.CreatedAt,
		CreatedBy:            c.CreatedBy,
		LastUpdatedAt:        c.LastUpdatedAt,
		LastUpdatedBy:        c.LastUpdatedBy,
	}
}

// ToListCustomerResponse converts a slice of domain.Customer to a slice of CustomerResponse DTOs
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}

// ToCustomerView composes the customer with its ledger. ledger may be nil.
func ToCustomerView(c *domain.Customer, ledger *domain.Ledger) CustomerView {
	view := CustomerView{
		CustomerResponse:   ToCustomerResponse(c),
		OutstandingBalance: decimal.Zero,
		BalanceType:        domain.BalanceDr,
	}
	if ledger != nil {
		view.LedgerCode = ledger.Code
		view.LedgerName = ledger.Name
		view.OutstandingBalance = ledger.OpeningBalance
		view.BalanceType = ledger.BalanceType
	}
	return view
}

// ToMatchCustomerResponse converts a domain.MatchResult to its DTO
func ToMatchCustomerResponse(m domain.MatchResult) MatchCustomerResponse {
	res := MatchCustomerResponse{
		MatchFound:      m.MatchFound,
		Reason:          m.Reason,
		SimilarityScore: m.SimilarityScore,
	}
	if m.Ledger != nil {
		l := ToLedgerResponse(m.Ledger)
		res.Ledger = &l
	}
	return res
}

// ToMergeCustomersResponse converts a domain.MergeResult to its DTO
func ToMergeCustomersResponse(m domain.MergeResult) MergeCustomersResponse {
	return MergeCustomersResponse{
		PrimaryID:           m.PrimaryID,
		MergedIDs:           m.MergedIDs,
		ConsolidatedBalance: m.ConsolidatedBalance,
		AuditLog:            ToAuditLogResponse(m.AuditLog),
	}
}
