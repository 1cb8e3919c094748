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
	"github.com/finledger/ledger_backend/internal/dto"
	"github.com/google/uuid"
)

// transactionServiceImpl implements the TransactionSvcFacade interface.
type transactionServiceImpl struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
	audit   portssvc.AuditSvcFacade
}

// TransactionServiceOption is a functional option for configuring the transaction service.
type TransactionServiceOption func(*transactionServiceImpl)

// WithTransactionAuditService adds the audit service dependency.
func WithTransactionAuditService(audit portssvc.AuditSvcFacade) TransactionServiceOption {
	return func(s *transactionServiceImpl) {
		s.audit = audit
	}
}

// NewTransactionService creates a new transaction service with the provided options.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionServiceImpl{txnRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

func (s *transactionServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := req.ToDomain()
	if err != nil {
		s.LogWarn(ctx, "Invalid transaction payload", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	txn.TransactionID = uuid.NewString()
	if txn.Status == "" {
		txn.Status = domain.StatusCompleted
	}
	if txn.Category == "" {
		txn.Category = "Miscellaneous"
	}
	txn.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	if s.audit != nil {
		s.audit.LogAction(ctx, "TRANSACTION_CREATED", &userID,
			fmt.Sprintf("%s %s for client %q", txn.Type, txn.Amount, txn.ClientName))
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{
		Type:       domain.TransactionType(params.Type),
		ClientName: params.Client,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	if params.FromDate != "" {
		from, err := time.Parse("2006-01-02", params.FromDate)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.InvalidDateRange, "fromDate", "fromDate must be YYYY-MM-DD")
		}
		filter.FromDate = &from
	}
	if params.ToDate != "" {
		to, err := time.Parse("2006-01-02", params.ToDate)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.InvalidDateRange, "toDate", "toDate must be YYYY-MM-DD")
		}
		filter.ToDate = &to
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return nil, apperrors.NewValidationError(apperrors.InvalidDateRange, "fromDate", "fromDate must not be after toDate")
	}

	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *transactionServiceImpl) ListClients(ctx context.Context) ([]string, error) {
	clients, err := s.txnRepo.DistinctClientNames(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list client names")
		return nil, fmt.Errorf("failed to list client names: %w", err)
	}
	return clients, nil
}

// Summary returns the dashboard totals. Fetch errors propagate to the caller;
// they are never rendered as a zero balance.
func (s *transactionServiceImpl) Summary(ctx context.Context, clientName string) (*dto.SummaryResponse, error) {
	totalCredit, totalDebit, err := s.txnRepo.SummaryTotals(ctx, clientName)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute summary totals", slog.String("client", clientName))
		return nil, fmt.Errorf("failed to compute summary totals: %w", err)
	}

	return &dto.SummaryResponse{
		TotalCredit: totalCredit,
		TotalDebit:  totalDebit,
		Balance:     totalCredit.Sub(totalDebit),
	}, nil
}

func (s *transactionServiceImpl) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	if s.audit != nil {
		s.audit.LogAction(ctx, "TRANSACTION_DELETED", &userID,
			fmt.Sprintf("Deleted %s %s for client %q", txn.Type, txn.Amount, txn.ClientName))
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
