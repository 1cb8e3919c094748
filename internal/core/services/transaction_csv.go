package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/finledger/ledger_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// csvColumns maps canonical column names to accepted header spellings.
// Header matching is case-insensitive.
var csvColumns = map[string][]string{
	"date":        {"date"},
	"type":        {"type"},
	"client_name": {"client_name", "clientname", "client"},
	"description": {"description"},
	"category":    {"category"},
	"status":      {"status"},
	"amount":      {"amount"},
	"bank_name":   {"bank_name", "bankname", "bank"},
}

var csvRequired = []string{"date", "type", "client_name", "description", "amount"}

// ImportCSV parses a transactions CSV and saves the valid rows as one batch.
// Invalid rows are skipped and reported back by row number; a structurally
// invalid file (missing required columns) rejects the whole upload.
func (s *transactionServiceImpl) ImportCSV(ctx context.Context, r io.Reader, userID string) (*dto.CSVImportResponse, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // ragged rows are handled per-row below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex, err := mapCSVHeader(header)
	if err != nil {
		s.LogWarn(ctx, "CSV structure rejected", slog.String("error", err.Error()))
		return nil, err
	}

	var (
		txns      []domain.Transaction
		rowErrors []string
	)
	now := time.Now()
	rowNumber := 1 // header is row 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", rowNumber, err))
			continue
		}

		txn, err := transactionFromCSVRow(record, colIndex)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", rowNumber, err))
			continue
		}

		txn.TransactionID = uuid.NewString()
		txn.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		txns = append(txns, txn)
	}

	if len(txns) > 0 {
		if err := s.txnRepo.SaveTransactions(ctx, txns); err != nil {
			s.LogError(ctx, err, "Failed to save imported transactions", slog.Int("count", len(txns)))
			return nil, fmt.Errorf("failed to save imported transactions: %w", err)
		}
	}

	if s.audit != nil {
		s.audit.LogAction(ctx, "TRANSACTION_CSV_IMPORT", &userID,
			fmt.Sprintf("CSV import: %d saved, %d skipped", len(txns), len(rowErrors)))
	}

	s.LogInfo(ctx, "CSV import completed",
		slog.Int("saved", len(txns)),
		slog.Int("skipped", len(rowErrors)))

	return &dto.CSVImportResponse{
		TransactionsSaved: len(txns),
		RowsSkipped:       len(rowErrors),
		RowErrors:         rowErrors,
	}, nil
}

// mapCSVHeader resolves canonical column names to indices in the header row.
func mapCSVHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(csvColumns))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for canonical, aliases := range csvColumns {
			for _, alias := range aliases {
				if name == alias {
					index[canonical] = i
				}
			}
		}
	}
	for _, col := range csvRequired {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("invalid CSV format, missing required column %q (expected: date, type, client_name, description, category, status, amount)", col)
		}
	}
	return index, nil
}

func csvField(record []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func transactionFromCSVRow(record []string, index map[string]int) (domain.Transaction, error) {
	date, err := time.Parse("2006-01-02", csvField(record, index, "date"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", csvField(record, index, "date"))
	}

	amount, err := decimal.NewFromString(csvField(record, index, "amount"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid amount %q", csvField(record, index, "amount"))
	}

	txn := domain.Transaction{
		Date:        date,
		Description: csvField(record, index, "description"),
		Amount:      amount,
		Type:        domain.TransactionType(strings.ToUpper(csvField(record, index, "type"))),
		Status:      domain.TransactionStatus(strings.ToUpper(csvField(record, index, "status"))),
		Category:    csvField(record, index, "category"),
		ClientName:  csvField(record, index, "client_name"),
		BankName:    csvField(record, index, "bank_name"),
	}
	if txn.Status == "" {
		txn.Status = domain.StatusCompleted
	}
	if txn.Category == "" {
		txn.Category = "Miscellaneous"
	}
	if txn.Description == "" {
		return domain.Transaction{}, fmt.Errorf("description is required")
	}
	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	return txn, nil
}
