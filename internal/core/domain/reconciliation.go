package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchStatus is the verdict of a reconciliation run.
type MatchStatus string

const (
	// Matched: system balance equals the bank balance within tolerance.
	Matched MatchStatus = "MATCHED"
	// Unmatched: system balance differs from the bank balance.
	Unmatched MatchStatus = "UNMATCHED"
	// PendingConfirm: no transactions existed in the requested scope, so a
	// numeric comparison is meaningless.
	PendingConfirm MatchStatus = "PENDING_CONFIRM"
)

// ReconciliationRequest is the input to a reconciliation run.
// Balances are decimals by construction; string inputs are parsed (and
// rejected) at the DTO boundary.
type ReconciliationRequest struct {
	FromDate       time.Time       `json:"fromDate"` // Inclusive
	ToDate         time.Time       `json:"toDate"`   // Inclusive
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	BankBalance    decimal.Decimal `json:"bankBalance"`
	ClientFilter   string          `json:"clientFilter"` // Optional; empty means all clients
	BankFilter     string          `json:"bankFilter"`   // Optional; empty means all banks
}

// ReconciliationResult is the computed outcome of a reconciliation run.
// It is a value object; persistence is the caller's concern.
type ReconciliationResult struct {
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	SystemBalance    decimal.Decimal `json:"systemBalance"`
	BankBalance      decimal.Decimal `json:"bankBalance"` // Echoed from the request
	Difference       decimal.Decimal `json:"difference"`
	MatchStatus      MatchStatus     `json:"matchStatus"`
	TransactionCount int             `json:"transactionCount"`
}

// Reconciliation is a persisted reconciliation run. ComputedStatus always holds
// the engine verdict; OverrideStatus is set only by a manual confirm/unconfirm
// action, so the computed truth is never lost to an override.
type Reconciliation struct {
	ReconciliationID string          `json:"reconciliationID"` // Primary Key (UUID)
	ClientName       string          `json:"clientName"`
	BankName         string          `json:"bankName"`
	FromDate         time.Time       `json:"fromDate"`
	ToDate           time.Time       `json:"toDate"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	BankBalance      decimal.Decimal `json:"bankBalance"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	SystemBalance    decimal.Decimal `json:"systemBalance"`
	Difference       decimal.Decimal `json:"difference"`
	ComputedStatus   MatchStatus     `json:"computedStatus"`
	OverrideStatus   *MatchStatus    `json:"overrideStatus,omitempty"` // Nil unless manually overridden
	TransactionCount int             `json:"transactionCount"`
	AuditFields
}

// EffectiveStatus is the status surfaced to callers: the manual override when
// present, otherwise the computed verdict.
func (r Reconciliation) EffectiveStatus() MatchStatus {
	if r.OverrideStatus != nil {
		return *r.OverrideStatus
	}
	return r.ComputedStatus
}
