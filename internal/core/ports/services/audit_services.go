package services

import (
	"context"

	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/finledger/ledger_backend/internal/dto"
)

// AuditSvcFacade records and lists audit events. Recording failures are logged
// but never fail the action being audited.
type AuditSvcFacade interface {
	// LogAction records an audit event. userID may be nil for anonymous
	// events such as failed logins.
	LogAction(ctx context.Context, action string, userID *string, details string)

	// ListAuditLogs retrieves events, most recent first.
	ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLog, error)
}
