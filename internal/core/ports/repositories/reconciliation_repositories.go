package repositories

import (
	"context"
	"time"

	"github.com/finledger/ledger_backend/internal/core/domain"
)

// ReconciliationReader defines read operations for persisted reconciliations.
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a single reconciliation run.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error)

	// ListReconciliations retrieves runs, most recent first.
	ListReconciliations(ctx context.Context, limit, offset int) ([]domain.Reconciliation, error)
}

// ReconciliationWriter defines write operations for persisted reconciliations.
type ReconciliationWriter interface {
	// SaveReconciliation persists a computed run.
	SaveReconciliation(ctx context.Context, rec domain.Reconciliation) error

	// UpdateOverrideStatus sets (or clears) the manual override on a run.
	// The computed status column is never touched here.
	UpdateOverrideStatus(ctx context.Context, reconciliationID string, override *domain.MatchStatus, updatedBy string, updatedAt time.Time) error
}

// ReconciliationRepositoryFacade combines reconciliation persistence operations.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
