package dto

import (
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
)

// AuditLogResponse defines the data returned for an audit log entry.
type AuditLogResponse struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Action      domain.AuditAction `json:"action"`
	Entity      domain.AuditEntity `json:"entity"`
	Description string             `json:"description"`
	Status      domain.AuditStatus `json:"status"`
	Details     string             `json:"details,omitempty"`
	User        string             `json:"user,omitempty"`
}

// ListAuditLogsParams defines query parameters for listing audit logs.
type ListAuditLogsParams struct {
	Limit     int                `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken *string            `form:"nextToken"`
	Action    domain.AuditAction `form:"action"`
	Entity    domain.AuditEntity `form:"entity"`
	Status    domain.AuditStatus `form:"status"`
}

// ListAuditLogsResponse wraps a page of audit logs.
type ListAuditLogsResponse struct {
	Logs      []AuditLogResponse `json:"logs"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToAuditLogResponse converts a domain.AuditLogEntry to AuditLogResponse DTO
func ToAuditLogResponse(e domain.AuditLogEntry) AuditLogResponse {
	return AuditLogResponse{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		Action:      e.Action,
		Entity:      e.Entity,
		Description: e.Description,
		Status:      e.Status,
		Details:     e.Details,
		User:        e.User,
	}
}

// ToListAuditLogResponse converts a slice of audit entries to DTOs
func ToListAuditLogResponse(entries []domain.AuditLogEntry) []AuditLogResponse {
	res := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		res[i] = ToAuditLogResponse(e)
	}
	return res
}
