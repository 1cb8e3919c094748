package repositories

import (
	"context"
	"time"

	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing. Nil/zero fields are ignored.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       domain.TransactionType
	ClientName string
	Limit      int
	Offset     int
}

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)

	// FindForReconciliation retrieves the COMPLETED transactions inside the
	// inclusive date range, optionally narrowed by client and bank name.
	FindForReconciliation(ctx context.Context, clientName, bankName string, fromDate, toDate time.Time) ([]domain.Transaction, error)

	// DistinctClientNames lists the known client names, sorted.
	DistinctClientNames(ctx context.Context) ([]string, error)

	// SummaryTotals returns the credit and debit sums over COMPLETED
	// transactions, optionally restricted to one client. Sums are computed in
	// SQL so the database stays the single source of truth for totals.
	SummaryTotals(ctx context.Context, clientName string) (totalCredit, totalDebit decimal.Decimal, err error)
}

// TransactionWriter defines write operations for ledger transactions.
type TransactionWriter interface {
	// SaveTransaction persists a single transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactions persists a batch atomically (CSV import).
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// DeleteTransaction removes a transaction permanently.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines transaction persistence operations.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
