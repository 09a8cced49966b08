package models

import "time"

// Customer is the customers row. Nullable references use pointers.
type Customer struct {
	CustomerID           string     `db:"customer_id"`
	Name                 string     `db:"name"`
	GSTIN                string     `db:"gstin"`
	PAN                  string     `db:"pan"`
	Email                string     `db:"email"`
	Phone                string     `db:"phone"`
	BillingAddress       string     `db:"billing_address"`
	ShippingAddress      string     `db:"shipping_address"`
	DefaultPaymentTerms  string     `db:"default_payment_terms"`
	DefaultPlaceOfSupply string     `db:"default_place_of_supply"`
	LedgerID             *string    `db:"ledger_id"`
	MergedIntoID         *string    `db:"merged_into_id"`
	DeletedAt            *time.Time `db:"deleted_at"`
	AuditFields
}
