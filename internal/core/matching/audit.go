package matching

import "github.com/SscSPs/ledger_recon_app/internal/core/domain"

// NewAuditEntry stamps an audit entry with a fresh id and the engine clock.
func (e *Engine) NewAuditEntry(action domain.AuditAction, entity domain.AuditEntity, status domain.AuditStatus, description, details, user string) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		ID:          e.auditIDs.NewID(),
		Timestamp:   e.now(),
		Action:      action,
		Entity:      entity,
		Description: description,
		Status:      status,
		Details:     details,
		User:        user,
	}
}
