package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table.
type Transaction struct {
	TransactionID string
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	Type          string // CREDIT or DEBIT
	Status        string // COMPLETED or PENDING
	Category      string
	ClientName    string
	BankName      string
	AuditFields
}
