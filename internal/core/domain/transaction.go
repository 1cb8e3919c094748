package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// TransactionStatus indicates whether a transaction has settled.
// Only COMPLETED transactions participate in reconciliation and dashboard totals.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusPending   TransactionStatus = "PENDING"
)

// Transaction represents a single ledger entry affecting the organisation balance.
// Amount is always non-negative; the sign of its effect comes from Type.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	Date          time.Time         `json:"date"`          // Calendar date of the entry
	Description   string            `json:"description"`
	Amount        decimal.Decimal   `json:"amount"` // Non-negative; precise decimal type
	Type          TransactionType   `json:"type"`   // DEBIT or CREDIT (Not Null)
	Status        TransactionStatus `json:"status"` // Default: COMPLETED
	Category      string            `json:"category"`
	ClientName    string            `json:"clientName"` // Empty means a manual/house entry
	BankName      string            `json:"bankName"`   // Empty when no bank statement is associated
	AuditFields
}

// EffectiveStatus returns the transaction status, treating an absent status as
// COMPLETED.
func (t Transaction) EffectiveStatus() TransactionStatus {
	if t.Status == "" {
		return StatusCompleted
	}
	return t.Status
}

// Validate checks the structural invariants of a transaction.
func (t Transaction) Validate() error {
	if t.Type != Debit && t.Type != Credit {
		return fmt.Errorf("transaction type must be CREDIT or DEBIT, got %q", t.Type)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction amount must be non-negative, got %s", t.Amount)
	}
	if s := t.EffectiveStatus(); s != StatusCompleted && s != StatusPending {
		return fmt.Errorf("transaction status must be COMPLETED or PENDING, got %q", s)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}
