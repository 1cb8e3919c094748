package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger_backend/internal/core/ports/repositories"
	"github.com/finledger/ledger_backend/internal/models"
	"github.com/finledger/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, date, description, amount, type, status, category, client_name, bank_name, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.Date,
		&t.Description,
		&t.Amount,
		&t.Type,
		&t.Status,
		&t.Category,
		&t.ClientName,
		&t.BankName,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveTransaction inserts a single transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Date,
		modelTxn.Description,
		modelTxn.Amount,
		modelTxn.Type,
		modelTxn.Status,
		modelTxn.Category,
		modelTxn.ClientName,
		modelTxn.BankName,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", modelTxn.TransactionID, err)
	}
	return nil
}

// SaveTransactions inserts a batch of transactions atomically. Used by the
// CSV import path; either all rows land or none do.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	batch := &pgx.Batch{}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID, m.Date, m.Description, m.Amount, m.Type, m.Status,
			m.Category, m.ClientName, m.BankName,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range txns {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to save transaction batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close transaction batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a single transaction.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.FromDate != nil {
		conditions = append(conditions, "date >= "+arg(*filter.FromDate))
	}
	if filter.ToDate != nil {
		conditions = append(conditions, "date <= "+arg(*filter.ToDate))
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = "+arg(string(filter.Type)))
	}
	if filter.ClientName != "" {
		conditions = append(conditions, "LOWER(TRIM(client_name)) = LOWER(TRIM("+arg(filter.ClientName)+"))")
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// FindForReconciliation retrieves the COMPLETED transactions inside the
// inclusive date range, optionally narrowed by client and bank name. The name
// filters mirror the engine's trimmed case-insensitive matching so the SQL
// prefilter never excludes a row the engine would keep.
func (r *PgxTransactionRepository) FindForReconciliation(ctx context.Context, clientName, bankName string, fromDate, toDate time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = 'COMPLETED'
		  AND date >= $1
		  AND date <= $2
		  AND ($3 = '' OR LOWER(TRIM(client_name)) = LOWER(TRIM($3)))
		  AND ($4 = '' OR LOWER(TRIM(bank_name)) = LOWER(TRIM($4)))
		ORDER BY date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, fromDate, toDate, clientName, bankName)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for reconciliation: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions for reconciliation: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// DistinctClientNames lists the known client names, sorted.
func (r *PgxTransactionRepository) DistinctClientNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT client_name
		FROM transactions
		WHERE client_name <> ''
		ORDER BY client_name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query client names: %w", err)
	}
	defer rows.Close()

	names, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var name string
		err := row.Scan(&name)
		return name, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan client names: %w", err)
	}
	return names, nil
}

// SummaryTotals sums credits and debits over COMPLETED transactions in SQL.
func (r *PgxTransactionRepository) SummaryTotals(ctx context.Context, clientName string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'CREDIT'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'DEBIT'), 0)
		FROM transactions
		WHERE status = 'COMPLETED'
		  AND ($1 = '' OR LOWER(TRIM(client_name)) = LOWER(TRIM($1)));
	`
	var totalCredit, totalDebit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, clientName).Scan(&totalCredit, &totalDebit); err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("failed to compute summary totals: %w", err)
	}
	return totalCredit, totalDebit, nil
}

// DeleteTransaction removes a transaction permanently.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
