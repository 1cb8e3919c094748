package repositories

import (
	"context"

	"github.com/finledger/ledger_backend/internal/core/domain"
)

// AuditLogRepository persists and lists audit events.
type AuditLogRepository interface {
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error
	ListAuditLogs(ctx context.Context, limit, offset int) ([]domain.AuditLog, error)
}
