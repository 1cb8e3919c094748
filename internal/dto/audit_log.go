package dto

import (
	"time"

	"github.com/finledger/ledger_backend/internal/core/domain"
)

// AuditLogResponse defines the data returned for an audit event. Module and
// Status are derived from the action name at read time.
type AuditLogResponse struct {
	AuditLogID  string    `json:"auditLogID"`
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	Module      string    `json:"module"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      *string   `json:"userID,omitempty"`
}

// ToAuditLogResponse converts a domain.AuditLog to its response DTO.
func ToAuditLogResponse(log *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditLogID:  log.AuditLogID,
		Timestamp:   log.Timestamp,
		Action:      log.Action,
		Module:      log.Module(),
		Description: log.Details,
		Status:      log.Outcome(),
		UserID:      log.UserID,
	}
}

// ToListAuditLogResponse converts a slice of audit events.
func ToListAuditLogResponse(logs []domain.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(logs))
	for i := range logs {
		res[i] = ToAuditLogResponse(&logs[i])
	}
	return res
}

// ListAuditLogsParams defines query parameters for listing audit events.
type ListAuditLogsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}
