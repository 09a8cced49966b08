package domain

import "time"

// AuditAction names the operation an audit entry records.
type AuditAction string

const (
	ActionAutoCreate AuditAction = "Auto-Create"
	ActionLink       AuditAction = "Link"
	ActionMerge      AuditAction = "Merge"
	ActionSync       AuditAction = "Sync"
	ActionImport     AuditAction = "Import"
	ActionDelete     AuditAction = "Delete"
)

// AuditEntity names the kind of record an audit entry is about.
type AuditEntity string

const (
	EntityCustomer AuditEntity = "Customer"
	EntityLedger   AuditEntity = "Ledger"
)

// AuditStatus is the outcome of the audited operation.
type AuditStatus string

const (
	StatusSuccess AuditStatus = "Success"
	StatusFailed  AuditStatus = "Failed"
	StatusSkipped AuditStatus = "Skipped"
)

// AuditLogEntry is an append-only record created when an operation completes.
type AuditLogEntry struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	Action      AuditAction `json:"action"`
	Entity      AuditEntity `json:"entity"`
	Description string      `json:"description"`
	Status      AuditStatus `json:"status"`
	Details     string      `json:"details,omitempty"`
	User        string      `json:"user,omitempty"`
}
