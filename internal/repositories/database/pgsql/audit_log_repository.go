package pgsql

import (
	"context"
	"fmt"

	"github.com/finledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger_backend/internal/core/ports/repositories"
	"github.com/finledger/ledger_backend/internal/models"
	"github.com/finledger/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for audit events.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

// SaveAuditLog inserts a single audit event.
func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	modelLog := mapping.ToModelAuditLog(log)

	query := `
		INSERT INTO audit_logs (audit_log_id, action, user_id, details, timestamp)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelLog.AuditLogID,
		modelLog.Action,
		modelLog.UserID,
		modelLog.Details,
		modelLog.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit log %s: %w", modelLog.AuditLogID, err)
	}
	return nil
}

// ListAuditLogs retrieves audit events, most recent first.
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, limit, offset int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT audit_log_id, action, user_id, details, timestamp
		FROM audit_logs
		ORDER BY timestamp DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	modelLogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLog, error) {
		var l models.AuditLog
		err := row.Scan(&l.AuditLogID, &l.Action, &l.UserID, &l.Details, &l.Timestamp)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit logs: %w", err)
	}

	return mapping.ToDomainAuditLogSlice(modelLogs), nil
}
