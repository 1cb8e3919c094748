package models

import "time"

// AuditLog mirrors the audit_logs table.
type AuditLog struct {
	AuditLogID string
	Action     string
	UserID     *string
	Details    string
	Timestamp  time.Time
}
