package domain

import (
	"strings"
	"time"
)

// AuditLog records a user-visible action for compliance review.
// UserID is nil for anonymous events such as failed login attempts.
type AuditLog struct {
	AuditLogID string    `json:"auditLogID"` // Primary Key (UUID)
	Action     string    `json:"action"`     // e.g. USER_LOGIN, TRANSACTION_CREATED
	UserID     *string   `json:"userID,omitempty"`
	Details    string    `json:"details"`
	Timestamp  time.Time `json:"timestamp"`
}

// Module buckets the action into the application area it belongs to.
func (l AuditLog) Module() string {
	action := l.Action
	switch {
	case strings.Contains(action, "LOGIN"), strings.Contains(action, "LOGOUT"):
		return "Authentication"
	case strings.Contains(action, "TRANSACTION"), strings.Contains(action, "CSV"):
		return "Transactions"
	case strings.Contains(action, "RECONCILIATION"), strings.Contains(action, "OVERRIDE"):
		return "Reconciliation"
	case strings.Contains(action, "EXPORT"), strings.Contains(action, "REPORT"):
		return "Reports"
	case strings.Contains(action, "USER"):
		return "Users"
	default:
		return "System"
	}
}

// Outcome classifies the event as SUCCESS or FAILED based on the action name.
func (l AuditLog) Outcome() string {
	if strings.Contains(l.Action, "FAILED") || strings.Contains(l.Action, "ERROR") {
		return "FAILED"
	}
	return "SUCCESS"
}
