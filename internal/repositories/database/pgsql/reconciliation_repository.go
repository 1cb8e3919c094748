package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger_backend/internal/core/ports/repositories"
	"github.com/finledger/ledger_backend/internal/models"
	"github.com/finledger/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reconciliationColumns = `reconciliation_id, client_name, bank_name, from_date, to_date, opening_balance, bank_balance, total_credit, total_debit, system_balance, difference, computed_status, override_status, transaction_count, created_at, created_by, last_updated_at, last_updated_by`

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for reconciliation runs.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func scanReconciliation(row pgx.Row) (models.Reconciliation, error) {
	var rec models.Reconciliation
	err := row.Scan(
		&rec.ReconciliationID,
		&rec.ClientName,
		&rec.BankName,
		&rec.FromDate,
		&rec.ToDate,
		&rec.OpeningBalance,
		&rec.BankBalance,
		&rec.TotalCredit,
		&rec.TotalDebit,
		&rec.SystemBalance,
		&rec.Difference,
		&rec.ComputedStatus,
		&rec.OverrideStatus,
		&rec.TransactionCount,
		&rec.CreatedAt,
		&rec.CreatedBy,
		&rec.LastUpdatedAt,
		&rec.LastUpdatedBy,
	)
	return rec, err
}

// SaveReconciliation persists a computed run.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error {
	modelRec := mapping.ToModelReconciliation(rec)

	query := `
		INSERT INTO reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRec.ReconciliationID,
		modelRec.ClientName,
		modelRec.BankName,
		modelRec.FromDate,
		modelRec.ToDate,
		modelRec.OpeningBalance,
		modelRec.BankBalance,
		modelRec.TotalCredit,
		modelRec.TotalDebit,
		modelRec.SystemBalance,
		modelRec.Difference,
		modelRec.ComputedStatus,
		modelRec.OverrideStatus,
		modelRec.TransactionCount,
		modelRec.CreatedAt,
		modelRec.CreatedBy,
		modelRec.LastUpdatedAt,
		modelRec.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reconciliation %s: %w", modelRec.ReconciliationID, err)
	}
	return nil
}

// FindReconciliationByID retrieves a single reconciliation run.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM reconciliations
		WHERE reconciliation_id = $1;
	`
	modelRec, err := scanReconciliation(r.Pool.QueryRow(ctx, query, reconciliationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}

	domainRec := mapping.ToDomainReconciliation(modelRec)
	return &domainRec, nil
}

// ListReconciliations retrieves runs, most recent first.
func (r *PgxReconciliationRepository) ListReconciliations(ctx context.Context, limit, offset int) ([]domain.Reconciliation, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + reconciliationColumns + `
		FROM reconciliations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliations: %w", err)
	}
	defer rows.Close()

	modelRecs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Reconciliation, error) {
		return scanReconciliation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reconciliations: %w", err)
	}

	return mapping.ToDomainReconciliationSlice(modelRecs), nil
}

// UpdateOverrideStatus sets (or clears) the manual override on a run. The
// computed_status column is never touched here.
func (r *PgxReconciliationRepository) UpdateOverrideStatus(ctx context.Context, reconciliationID string, override *domain.MatchStatus, updatedBy string, updatedAt time.Time) error {
	var overrideStr *string
	if override != nil {
		s := string(*override)
		overrideStr = &s
	}

	query := `
		UPDATE reconciliations
		SET override_status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE reconciliation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, reconciliationID, overrideStr, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update override status for %s: %w", reconciliationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
