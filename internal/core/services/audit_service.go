package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledger_backend/internal/core/ports/services"
	"github.com/finledger/ledger_backend/internal/dto"
	"github.com/google/uuid"
)

// auditServiceImpl implements the AuditSvcFacade interface.
type auditServiceImpl struct {
	BaseService
	auditRepo portsrepo.AuditLogRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(repo portsrepo.AuditLogRepository) portssvc.AuditSvcFacade {
	return &auditServiceImpl{auditRepo: repo}
}

var _ portssvc.AuditSvcFacade = (*auditServiceImpl)(nil)

// LogAction records an audit event. A failure to persist the event is logged
// and swallowed: auditing must never fail the action being audited.
func (s *auditServiceImpl) LogAction(ctx context.Context, action string, userID *string, details string) {
	log := domain.AuditLog{
		AuditLogID: uuid.NewString(),
		Action:     action,
		UserID:     userID,
		Details:    details,
		Timestamp:  time.Now(),
	}
	if err := s.auditRepo.SaveAuditLog(ctx, log); err != nil {
		s.LogError(ctx, err, "Failed to persist audit log",
			slog.String("action", action),
			slog.String("details", details))
	}
}

func (s *auditServiceImpl) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLog, error) {
	logs, err := s.auditRepo.ListAuditLogs(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
