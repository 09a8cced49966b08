package mapping

import (
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:           d.CustomerID,
		Name:                 d.Name,
		GSTIN:                d.GSTIN,
		PAN:                  d.PAN,
		Email:                d.Email,
		Phone:                d.Phone,
		BillingAddress:       d.BillingAddress,
		ShippingAddress:      d.ShippingAddress,
		DefaultPaymentTerms:  d.DefaultPaymentTerms,
		DefaultPlaceOfSupply: d.DefaultPlaceOfSupply,
		LedgerID:             nullable(d.LedgerID),
		MergedIntoID:         nullable(d.MergedIntoID),
		DeletedAt:            d.DeletedAt,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:           m.CustomerID,
		Name:                 m.Name,
		GSTIN:                m.GSTIN,
		PAN:                  m.PAN,
		Email:                m.Email,
		Phone:                m.Phone,
		BillingAddress:       m.BillingAddress,
		ShippingAddress:      m.ShippingAddress,
		DefaultPaymentTerms:  m.DefaultPaymentTerms,
		DefaultPlaceOfSupply: m.DefaultPlaceOfSupply,
		LedgerID:             deref(m.LedgerID),
		MergedIntoID:         deref(m.MergedIntoID),
		DeletedAt:            m.DeletedAt,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts a slice of model Customers to domain Customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	out := make([]domain.Customer, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCustomer(m)
	}
	return out
}
