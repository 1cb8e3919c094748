package dto

import (
	"time"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// CreateTransactionRequest defines the data needed to record a ledger entry.
// Amount arrives as a string and is parsed through decimal so binary floats
// never touch currency values.
type CreateTransactionRequest struct {
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=CREDIT DEBIT"`
	Status      string `json:"status" binding:"omitempty,oneof=COMPLETED PENDING"`
	Category    string `json:"category"`
	ClientName  string `json:"clientName"` // Empty means a manual/house entry
	BankName    string `json:"bankName"`
}

// ToDomain parses the request into a domain.Transaction (without ID/audit
// fields, which the service assigns).
func (r CreateTransactionRequest) ToDomain() (domain.Transaction, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return domain.Transaction{}, apperrors.NewValidationError(apperrors.InvalidDateRange, "date", "date must be YYYY-MM-DD")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return domain.Transaction{}, apperrors.NewValidationError(apperrors.InvalidBalance, "amount", "amount must be a decimal number")
	}
	txn := domain.Transaction{
		Date:        date,
		Description: r.Description,
		Amount:      amount,
		Type:        domain.TransactionType(r.Type),
		Status:      domain.TransactionStatus(r.Status),
		Category:    r.Category,
		ClientName:  r.ClientName,
		BankName:    r.BankName,
	}
	if err := txn.Validate(); err != nil {
		return domain.Transaction{}, apperrors.NewValidationError(apperrors.InvalidBalance, "amount", err.Error())
	}
	return txn, nil
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	FromDate string `form:"fromDate"`
	ToDate   string `form:"toDate"`
	Type     string `form:"type" binding:"omitempty,oneof=CREDIT DEBIT"`
	Client   string `form:"client"`
	Limit    int    `form:"limit,default=50"`
	Offset   int    `form:"offset,default=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Category      string          `json:"category"`
	ClientName    string          `json:"clientName"`
	BankName      string          `json:"bankName"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Date:          txn.Date.Format(dateLayout),
		Description:   txn.Description,
		Amount:        txn.Amount,
		Type:          string(txn.Type),
		Status:        string(txn.EffectiveStatus()),
		Category:      txn.Category,
		ClientName:    txn.ClientName,
		BankName:      txn.BankName,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
}

// ToListTransactionResponse converts a slice of domain transactions.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// SummaryResponse is the dashboard aggregate over COMPLETED transactions.
type SummaryResponse struct {
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	Balance     decimal.Decimal `json:"balance"`
}

// CSVImportResponse reports the outcome of a transaction CSV upload.
type CSVImportResponse struct {
	TransactionsSaved int      `json:"transactionsSaved"`
	RowsSkipped       int      `json:"rowsSkipped"`
	RowErrors         []string `json:"rowErrors,omitempty"`
}
