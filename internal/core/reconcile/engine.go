// Package reconcile implements the bank reconciliation calculation: given an
// opening balance, a set of credit/debit transactions and a bank-stated
// closing balance, derive the system balance and classify the period as
// MATCHED, UNMATCHED or PENDING_CONFIRM.
//
// Every surface that needs balance math (bank reconciliation, client
// reconciliation, reports) goes through Reconcile so the rules cannot drift
// between callers. The functions here are pure: no I/O, no shared state, safe
// to call concurrently.
package reconcile

import (
	"strings"
	"time"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Epsilon is the MATCHED tolerance: differences strictly below one cent are
// treated as equal.
var Epsilon = decimal.New(1, -2) // 0.01

// Reconcile computes a deterministic reconciliation verdict for the given
// transactions and request.
//
// Transactions are filtered to COMPLETED entries (a missing status counts as
// COMPLETED) whose date falls inside the inclusive [FromDate, ToDate] range.
// Client and bank filters are exact matches, compared case-insensitively with
// surrounding whitespace trimmed. The input order of transactions is
// irrelevant.
//
// Validation failures return an apperrors.ValidationError naming the offending
// field; no partial or zero-valued result is ever returned alongside an error.
func Reconcile(transactions []domain.Transaction, req domain.ReconciliationRequest) (domain.ReconciliationResult, error) {
	if err := validateRequest(req); err != nil {
		return domain.ReconciliationResult{}, err
	}

	totalCredit := decimal.Zero
	totalDebit := decimal.Zero
	count := 0

	for _, txn := range transactions {
		if !inScope(txn, req) {
			continue
		}
		count++
		switch txn.Type {
		case domain.Credit:
			totalCredit = totalCredit.Add(txn.Amount)
		case domain.Debit:
			totalDebit = totalDebit.Add(txn.Amount)
		}
	}

	systemBalance := req.OpeningBalance.Add(totalCredit).Sub(totalDebit)
	difference := systemBalance.Sub(req.BankBalance)

	return domain.ReconciliationResult{
		TotalCredit:      totalCredit,
		TotalDebit:       totalDebit,
		SystemBalance:    systemBalance,
		BankBalance:      req.BankBalance,
		Difference:       difference,
		MatchStatus:      classify(count, difference),
		TransactionCount: count,
	}, nil
}

func validateRequest(req domain.ReconciliationRequest) error {
	if req.FromDate.IsZero() {
		return apperrors.NewValidationError(apperrors.InvalidDateRange, "fromDate", "fromDate is required")
	}
	if req.ToDate.IsZero() {
		return apperrors.NewValidationError(apperrors.InvalidDateRange, "toDate", "toDate is required")
	}
	if dateOnly(req.FromDate).After(dateOnly(req.ToDate)) {
		return apperrors.NewValidationError(apperrors.InvalidDateRange, "fromDate", "fromDate must not be after toDate")
	}
	return nil
}

// inScope reports whether txn participates in the reconciliation described by req.
func inScope(txn domain.Transaction, req domain.ReconciliationRequest) bool {
	if txn.EffectiveStatus() != domain.StatusCompleted {
		return false
	}
	day := dateOnly(txn.Date)
	if day.Before(dateOnly(req.FromDate)) || day.After(dateOnly(req.ToDate)) {
		return false
	}
	if req.ClientFilter != "" && !nameEqual(txn.ClientName, req.ClientFilter) {
		return false
	}
	if req.BankFilter != "" && !nameEqual(txn.BankName, req.BankFilter) {
		return false
	}
	return true
}

// classify applies the verdict rules. The empty-set rule wins over the numeric
// comparison: with nothing to reconcile against, a zero difference proves nothing.
func classify(count int, difference decimal.Decimal) domain.MatchStatus {
	switch {
	case count == 0:
		return domain.PendingConfirm
	case difference.Abs().LessThan(Epsilon):
		return domain.Matched
	default:
		return domain.Unmatched
	}
}

// nameEqual is the one filter-matching policy: exact match, case-insensitive, trimmed.
func nameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// dateOnly strips any time-of-day component; reconciliation ranges have
// calendar-date semantics.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
