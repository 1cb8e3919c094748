package services

import (
	"context"
	"io"

	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/finledger/ledger_backend/internal/dto"
)

// TransactionReaderSvc defines read operations over the ledger.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a single transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the query params.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// ListClients lists distinct client names for filter dropdowns.
	ListClients(ctx context.Context) ([]string, error)

	// Summary computes the dashboard totals over COMPLETED transactions,
	// optionally restricted to one client.
	Summary(ctx context.Context, clientName string) (*dto.SummaryResponse, error)
}

// TransactionWriterSvc defines write operations over the ledger.
type TransactionWriterSvc interface {
	// CreateTransaction records a ledger entry.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes an entry; the deletion is audited.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error

	// ImportCSV parses a transactions CSV and saves the valid rows. Bad rows
	// are skipped and reported, never silently dropped.
	ImportCSV(ctx context.Context, r io.Reader, userID string) (*dto.CSVImportResponse, error)
}

// TransactionSvcFacade combines all transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
