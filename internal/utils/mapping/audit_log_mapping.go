package mapping

import (
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/models"
)

// ToModelAuditLog converts a domain AuditLogEntry to a model AuditLog
func ToModelAuditLog(d domain.AuditLogEntry) models.AuditLog {
	return models.AuditLog{
		ID:          d.ID,
		Timestamp:   d.Timestamp,
		Action:      string(d.Action),
		Entity:      string(d.Entity),
		Description: d.Description,
		Status:      string(d.Status),
		Details:     d.Details,
		UserID:      d.User,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLogEntry
func ToDomainAuditLog(m models.AuditLog) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		ID:          m.ID,
		Timestamp:   m.Timestamp,
		Action:      domain.AuditAction(m.Action),
		Entity:      domain.AuditEntity(m.Entity),
		Description: m.Description,
		Status:      domain.AuditStatus(m.Status),
		Details:     m.Details,
		User:        m.UserID,
	}
}
