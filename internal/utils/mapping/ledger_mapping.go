package mapping

import (
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/models"
)

// ToModelLedger converts a domain Ledger to a model Ledger
func ToModelLedger(d domain.Ledger) models.Ledger {
	m := models.Ledger{
		LedgerID:       d.LedgerID,
		Name:           d.Name,
		Code:           d.Code,
		LedgerGroup:    string(d.Group),
		OpeningBalance: d.OpeningBalance,
		BalanceType:    string(d.BalanceType),
		GSTApplicable:  d.GSTApplicable,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if c := d.ContactMeta; c != nil {
		// Empty strings rather than NULL so a present-but-empty contact survives a round trip.
		m.ContactEmail, m.ContactPhone, m.ContactAddress, m.ContactGSTIN = &c.Email, &c.Phone, &c.Address, &c.GSTIN
	}
	return m
}

// ToDomainLedger converts a model Ledger to a domain Ledger
func ToDomainLedger(m models.Ledger) domain.Ledger {
	d := domain.Ledger{
		LedgerID:       m.LedgerID,
		Name:           m.Name,
		Code:           m.Code,
		Group:          domain.LedgerGroup(m.LedgerGroup),
		OpeningBalance: m.OpeningBalance,
		BalanceType:    domain.BalanceType(m.BalanceType),
		GSTApplicable:  m.GSTApplicable,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.ContactEmail != nil || m.ContactPhone != nil || m.ContactAddress != nil || m.ContactGSTIN != nil {
		d.ContactMeta = &domain.ContactMeta{
			Email:   deref(m.ContactEmail),
			Phone:   deref(m.ContactPhone),
			Address: deref(m.ContactAddress),
			GSTIN:   deref(m.ContactGSTIN),
		}
	}
	return d
}
