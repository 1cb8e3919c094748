package dto

import (
	"time"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateReconciliationRequest defines the inputs to a reconciliation run.
// Balances are strings on the wire; decimal parsing here is the InvalidBalance
// validation boundary from which only finite decimals reach the engine.
type CalculateReconciliationRequest struct {
	ClientName     string `json:"clientName"`
	BankName       string `json:"bankName"`
	FromDate       string `json:"fromDate" binding:"required"`
	ToDate         string `json:"toDate" binding:"required"`
	OpeningBalance string `json:"openingBalance" binding:"required"`
	BankBalance    string `json:"bankBalance" binding:"required"`
}

// ToDomain parses and validates the request.
func (r CalculateReconciliationRequest) ToDomain() (domain.ReconciliationRequest, error) {
	fromDate, err := time.Parse(dateLayout, r.FromDate)
	if err != nil {
		return domain.ReconciliationRequest{}, apperrors.NewValidationError(apperrors.InvalidDateRange, "fromDate", "fromDate must be YYYY-MM-DD")
	}
	toDate, err := time.Parse(dateLayout, r.ToDate)
	if err != nil {
		return domain.ReconciliationRequest{}, apperrors.NewValidationError(apperrors.InvalidDateRange, "toDate", "toDate must be YYYY-MM-DD")
	}
	if fromDate.After(toDate) {
		return domain.ReconciliationRequest{}, apperrors.NewValidationError(apperrors.InvalidDateRange, "fromDate", "fromDate must not be after toDate")
	}
	openingBalance, err := decimal.NewFromString(r.OpeningBalance)
	if err != nil {
		return domain.ReconciliationRequest{}, apperrors.NewValidationError(apperrors.InvalidBalance, "openingBalance", "openingBalance must be a finite decimal")
	}
	bankBalance, err := decimal.NewFromString(r.BankBalance)
	if err != nil {
		return domain.ReconciliationRequest{}, apperrors.NewValidationError(apperrors.InvalidBalance, "bankBalance", "bankBalance must be a finite decimal")
	}
	return domain.ReconciliationRequest{
		FromDate:       fromDate,
		ToDate:         toDate,
		OpeningBalance: openingBalance,
		BankBalance:    bankBalance,
		ClientFilter:   r.ClientName,
		BankFilter:     r.BankName,
	}, nil
}

// OverrideReconciliationRequest is a manual confirm/unconfirm action.
type OverrideReconciliationRequest struct {
	Action string `json:"action" binding:"required,oneof=CONFIRM UNCONFIRM"`
}

// ReconciliationResponse defines the data returned for a reconciliation run.
// Both the computed verdict and any manual override are exposed; Status is
// the effective one callers should display.
type ReconciliationResponse struct {
	ReconciliationID string          `json:"reconciliationID"`
	ClientName       string          `json:"clientName"`
	BankName         string          `json:"bankName"`
	FromDate         string          `json:"fromDate"`
	ToDate           string          `json:"toDate"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	BankBalance      decimal.Decimal `json:"bankBalance"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	SystemBalance    decimal.Decimal `json:"systemBalance"`
	Difference       decimal.Decimal `json:"difference"`
	Status           string          `json:"status"`
	ComputedStatus   string          `json:"computedStatus"`
	OverrideStatus   *string         `json:"overrideStatus,omitempty"`
	TransactionCount int             `json:"transactionCount"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToReconciliationResponse converts a persisted reconciliation run.
func ToReconciliationResponse(rec *domain.Reconciliation) ReconciliationResponse {
	var override *string
	if rec.OverrideStatus != nil {
		s := string(*rec.OverrideStatus)
		override = &s
	}
	return ReconciliationResponse{
		ReconciliationID: rec.ReconciliationID,
		ClientName:       rec.ClientName,
		BankName:         rec.BankName,
		FromDate:         rec.FromDate.Format(dateLayout),
		ToDate:           rec.ToDate.Format(dateLayout),
		OpeningBalance:   rec.OpeningBalance,
		BankBalance:      rec.BankBalance,
		TotalCredit:      rec.TotalCredit,
		TotalDebit:       rec.TotalDebit,
		SystemBalance:    rec.SystemBalance,
		Difference:       rec.Difference,
		Status:           string(rec.EffectiveStatus()),
		ComputedStatus:   string(rec.ComputedStatus),
		OverrideStatus:   override,
		TransactionCount: rec.TransactionCount,
		CreatedAt:        rec.CreatedAt,
		CreatedBy:        rec.CreatedBy,
	}
}

// ToListReconciliationResponse converts a slice of reconciliation runs.
func ToListReconciliationResponse(recs []domain.Reconciliation) []ReconciliationResponse {
	res := make([]ReconciliationResponse, len(recs))
	for i := range recs {
		res[i] = ToReconciliationResponse(&recs[i])
	}
	return res
}

// ListReconciliationsParams defines query parameters for listing runs.
type ListReconciliationsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
