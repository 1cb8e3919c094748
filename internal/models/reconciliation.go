package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconciliation mirrors the reconciliations table. ComputedStatus and
// OverrideStatus are separate columns; OverrideStatus is NULL until a manual
// confirm/unconfirm happens.
type Reconciliation struct {
	ReconciliationID string
	ClientName       string
	BankName         string
	FromDate         time.Time
	ToDate           time.Time
	OpeningBalance   decimal.Decimal
	BankBalance      decimal.Decimal
	TotalCredit      decimal.Decimal
	TotalDebit       decimal.Decimal
	SystemBalance    decimal.Decimal
	Difference       decimal.Decimal
	ComputedStatus   string
	OverrideStatus   *string
	TransactionCount int
	AuditFields
}
