package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledger_backend/internal/core/ports/services"
	"github.com/finledger/ledger_backend/internal/core/reconcile"
	"github.com/finledger/ledger_backend/internal/dto"
	"github.com/google/uuid"
)

// reconciliationServiceImpl implements the ReconciliationSvcFacade interface.
type reconciliationServiceImpl struct {
	BaseService
	reconRepo portsrepo.ReconciliationRepositoryFacade
	txnRepo   portsrepo.TransactionReader
	audit     portssvc.AuditSvcFacade
}

// ReconciliationServiceOption is a functional option for configuring the reconciliation service.
type ReconciliationServiceOption func(*reconciliationServiceImpl)

// WithReconciliationAuditService adds the audit service dependency.
func WithReconciliationAuditService(audit portssvc.AuditSvcFacade) ReconciliationServiceOption {
	return func(s *reconciliationServiceImpl) {
		s.audit = audit
	}
}

// NewReconciliationService creates a new reconciliation service with the provided options.
func NewReconciliationService(reconRepo portsrepo.ReconciliationRepositoryFacade, txnRepo portsrepo.TransactionReader, options ...ReconciliationServiceOption) portssvc.ReconciliationSvcFacade {
	svc := &reconciliationServiceImpl{reconRepo: reconRepo, txnRepo: txnRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationServiceImpl)(nil)

// run parses the request, fetches the candidate transactions and executes the
// engine. Shared by Calculate and Preview.
func (s *reconciliationServiceImpl) run(ctx context.Context, req dto.CalculateReconciliationRequest) (domain.ReconciliationRequest, domain.ReconciliationResult, error) {
	domainReq, err := req.ToDomain()
	if err != nil {
		s.LogWarn(ctx, "Invalid reconciliation request", slog.String("error", err.Error()))
		return domain.ReconciliationRequest{}, domain.ReconciliationResult{}, err
	}

	txns, err := s.txnRepo.FindForReconciliation(ctx, domainReq.ClientFilter, domainReq.BankFilter, domainReq.FromDate, domainReq.ToDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch transactions for reconciliation")
		return domain.ReconciliationRequest{}, domain.ReconciliationResult{}, fmt.Errorf("failed to fetch transactions for reconciliation: %w", err)
	}

	result, err := reconcile.Reconcile(txns, domainReq)
	if err != nil {
		return domain.ReconciliationRequest{}, domain.ReconciliationResult{}, err
	}
	return domainReq, result, nil
}

func (s *reconciliationServiceImpl) Calculate(ctx context.Context, req dto.CalculateReconciliationRequest, userID string) (*domain.Reconciliation, error) {
	domainReq, result, err := s.run(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rec := domain.Reconciliation{
		ReconciliationID: uuid.NewString(),
		ClientName:       domainReq.ClientFilter,
		BankName:         domainReq.BankFilter,
		FromDate:         domainReq.FromDate,
		ToDate:           domainReq.ToDate,
		OpeningBalance:   domainReq.OpeningBalance,
		BankBalance:      result.BankBalance,
		TotalCredit:      result.TotalCredit,
		TotalDebit:       result.TotalDebit,
		SystemBalance:    result.SystemBalance,
		Difference:       result.Difference,
		ComputedStatus:   result.MatchStatus,
		TransactionCount: result.TransactionCount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reconRepo.SaveReconciliation(ctx, rec); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation", slog.String("reconciliation_id", rec.ReconciliationID))
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	if s.audit != nil {
		s.audit.LogAction(ctx, "RECONCILIATION_CALCULATED", &userID,
			fmt.Sprintf("Reconciliation %s to %s: %s (difference %s over %d transactions)",
				req.FromDate, req.ToDate, rec.ComputedStatus, rec.Difference, rec.TransactionCount))
	}

	s.LogInfo(ctx, "Reconciliation calculated",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.String("status", string(rec.ComputedStatus)),
		slog.Int("transaction_count", rec.TransactionCount))
	return &rec, nil
}

func (s *reconciliationServiceImpl) Preview(ctx context.Context, req dto.CalculateReconciliationRequest) (*domain.ReconciliationResult, error) {
	_, result, err := s.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *reconciliationServiceImpl) GetReconciliationByID(ctx context.Context, reconciliationID string) (*domain.Reconciliation, error) {
	rec, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find reconciliation", slog.String("reconciliation_id", reconciliationID))
		}
		return nil, err
	}
	return rec, nil
}

func (s *reconciliationServiceImpl) ListReconciliations(ctx context.Context, params dto.ListReconciliationsParams) ([]domain.Reconciliation, error) {
	recs, err := s.reconRepo.ListReconciliations(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reconciliations")
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	return recs, nil
}

// Override applies a manual confirm/unconfirm against the run's effective
// status, so repeating an action that already took effect is rejected rather
// than silently replayed.
func (s *reconciliationServiceImpl) Override(ctx context.Context, reconciliationID string, action reconcile.OverrideAction, userID string) (*domain.Reconciliation, error) {
	rec, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}

	next, err := reconcile.ApplyOverride(rec.EffectiveStatus(), action)
	if err != nil {
		s.LogWarn(ctx, "Override rejected",
			slog.String("reconciliation_id", reconciliationID),
			slog.String("action", string(action)),
			slog.String("status", string(rec.EffectiveStatus())))
		return nil, err
	}

	now := time.Now()
	override := &next
	// Unconfirming back to the computed verdict clears the override instead of
	// pinning it, so a later recomputation stays authoritative.
	if next == rec.ComputedStatus {
		override = nil
	}

	if err := s.reconRepo.UpdateOverrideStatus(ctx, reconciliationID, override, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update override status", slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to update override status: %w", err)
	}

	rec.OverrideStatus = override
	rec.LastUpdatedAt = now
	rec.LastUpdatedBy = userID

	if s.audit != nil {
		s.audit.LogAction(ctx, "RECONCILIATION_OVERRIDE", &userID,
			fmt.Sprintf("Reconciliation %s: %s, effective status now %s", reconciliationID, action, rec.EffectiveStatus()))
	}

	s.LogInfo(ctx, "Reconciliation override applied",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("action", string(action)),
		slog.String("effective_status", string(rec.EffectiveStatus())))
	return rec, nil
}
