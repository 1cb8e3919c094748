package services

import (
	"context"

	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/finledger/ledger_backend/internal/core/reconcile"
	"github.com/finledger/ledger_backend/internal/dto"
)

// ReconciliationSvcFacade exposes reconciliation runs and manual overrides.
// All balance math flows through the reconcile package; this service adds
// transaction fetching, persistence and auditing around it.
type ReconciliationSvcFacade interface {
	// Calculate runs the engine over the stored ledger and persists the result.
	Calculate(ctx context.Context, req dto.CalculateReconciliationRequest, userID string) (*domain.Reconciliation, error)

	// Preview runs the engine without persisting, for the ad hoc client
	// reconciliation view.
	Preview(ctx context.Context, req dto.CalculateReconciliationRequest) (*domain.ReconciliationResult, error)

	// GetReconciliationByID retrieves a persisted run.
	GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error)

	// ListReconciliations retrieves persisted runs, most recent first.
	ListReconciliations(ctx context.Context, params dto.ListReconciliationsParams) ([]domain.Reconciliation, error)

	// Override applies a manual confirm/unconfirm to a run's effective status.
	Override(ctx context.Context, reconciliationID string, action reconcile.OverrideAction, userID string) (*domain.Reconciliation, error)
}
