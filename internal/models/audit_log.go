package models

import "time"

// AuditLog is an audit_logs row.
type AuditLog struct {
	ID          string    `db:"audit_log_id"`
	Timestamp   time.Time `db:"logged_at"`
	Action      string    `db:"action"`
	Entity      string    `db:"entity"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	Details     string    `db:"details"`
	UserID      string    `db:"user_id"`
}
