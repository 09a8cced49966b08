package domain

import "time"

// Customer is a party the business invoices. LedgerID is empty while the customer
// has no linked ledger; when set it must reference an existing Ledger.
type Customer struct {
	CustomerID           string     `json:"customerID"`
	Name                 string     `json:"name"`
	GSTIN                string     `json:"gstin"` // "" means unregistered
	PAN                  string     `json:"pan,omitempty"`
	Email                string     `json:"email,omitempty"`
	Phone                string     `json:"phone,omitempty"`
	BillingAddress       string     `json:"billingAddress,omitempty"`
	ShippingAddress      string     `json:"shippingAddress,omitempty"`
	DefaultPaymentTerms  string     `json:"defaultPaymentTerms,omitempty"`
	DefaultPlaceOfSupply string     `json:"defaultPlaceOfSupply,omitempty"`
	LedgerID             string     `json:"ledgerID,omitempty"`
	MergedIntoID         string     `json:"mergedIntoID,omitempty"`
	DeletedAt            *time.Time `json:"deletedAt,omitempty"`
	AuditFields
}

// HasLedger reports whether the customer is linked to a ledger.
func (c Customer) HasLedger() bool {
	return c.LedgerID != ""
}

// IsDeleted reports whether the customer was soft-deleted (directly or by a merge).
func (c Customer) IsDeleted() bool {
	return c.DeletedAt != nil
}
