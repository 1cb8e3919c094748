package reconcile_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	"github.com/finledger/ledger_backend/internal/core/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(date string, typ domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn-" + date + "-" + amount,
		Date:          day(date),
		Amount:        dec(amount),
		Type:          typ,
		Status:        domain.StatusCompleted,
	}
}

func baseRequest() domain.ReconciliationRequest {
	return domain.ReconciliationRequest{
		FromDate:       day("2024-03-01"),
		ToDate:         day("2024-03-31"),
		OpeningBalance: dec("1000.00"),
		BankBalance:    dec("1300.00"),
	}
}

func TestReconcile_MatchedPeriod(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-03-01", domain.Credit, "500.00"), // on fromDate, inclusive
		txn("2024-03-31", domain.Debit, "200.00"),  // on toDate, inclusive
	}

	result, err := reconcile.Reconcile(transactions, baseRequest())
	require.NoError(t, err)

	assert.True(t, result.TotalCredit.Equal(dec("500.00")), "totalCredit = %s", result.TotalCredit)
	assert.True(t, result.TotalDebit.Equal(dec("200.00")), "totalDebit = %s", result.TotalDebit)
	assert.True(t, result.SystemBalance.Equal(dec("1300.00")), "systemBalance = %s", result.SystemBalance)
	assert.True(t, result.Difference.IsZero(), "difference = %s", result.Difference)
	assert.Equal(t, domain.Matched, result.MatchStatus)
	assert.Equal(t, 2, result.TransactionCount)
}

func TestReconcile_UnmatchedPeriod(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-03-01", domain.Credit, "500.00"),
		txn("2024-03-31", domain.Debit, "200.00"),
	}
	req := baseRequest()
	req.BankBalance = dec("1250.00")

	result, err := reconcile.Reconcile(transactions, req)
	require.NoError(t, err)

	assert.True(t, result.Difference.Equal(dec("50.00")), "difference = %s", result.Difference)
	assert.Equal(t, domain.Unmatched, result.MatchStatus)
}

func TestReconcile_EmptySetIsPendingConfirm(t *testing.T) {
	req := domain.ReconciliationRequest{
		FromDate:       day("2024-03-01"),
		ToDate:         day("2024-03-31"),
		OpeningBalance: dec("500.00"),
		BankBalance:    dec("500.00"),
	}

	result, err := reconcile.Reconcile(nil, req)
	require.NoError(t, err)

	assert.True(t, result.TotalCredit.IsZero())
	assert.True(t, result.TotalDebit.IsZero())
	assert.True(t, result.SystemBalance.Equal(dec("500.00")))
	assert.True(t, result.Difference.IsZero())
	// The empty-set rule wins even though the balances agree numerically.
	assert.Equal(t, domain.PendingConfirm, result.MatchStatus)
}

func TestReconcile_InvalidDateRange(t *testing.T) {
	req := baseRequest()
	req.FromDate = day("2024-03-10")
	req.ToDate = day("2024-03-01")

	_, err := reconcile.Reconcile(nil, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	kind, ok := apperrors.ValidationKindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.InvalidDateRange, kind)
}

func TestReconcile_MissingDates(t *testing.T) {
	for name, req := range map[string]domain.ReconciliationRequest{
		"missing fromDate": {ToDate: day("2024-03-31")},
		"missing toDate":   {FromDate: day("2024-03-01")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := reconcile.Reconcile(nil, req)
			kind, ok := apperrors.ValidationKindOf(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.InvalidDateRange, kind)
		})
	}
}

func TestReconcile_DateBoundaries(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-02-28", domain.Credit, "999.00"), // before range, same quarter
		txn("2024-03-01", domain.Credit, "10.00"),
		txn("2024-03-31", domain.Credit, "20.00"),
		txn("2024-04-01", domain.Credit, "888.00"), // after range
	}
	req := baseRequest()

	result, err := reconcile.Reconcile(transactions, req)
	require.NoError(t, err)

	assert.True(t, result.TotalCredit.Equal(dec("30.00")), "totalCredit = %s", result.TotalCredit)
	assert.Equal(t, 2, result.TransactionCount)
}

func TestReconcile_PendingTransactionsExcluded(t *testing.T) {
	pending := txn("2024-03-15", domain.Credit, "300.00")
	pending.Status = domain.StatusPending

	result, err := reconcile.Reconcile([]domain.Transaction{pending}, baseRequest())
	require.NoError(t, err)

	assert.True(t, result.TotalCredit.IsZero())
	assert.Equal(t, domain.PendingConfirm, result.MatchStatus)
}

func TestReconcile_MissingStatusDefaultsToCompleted(t *testing.T) {
	entry := txn("2024-03-15", domain.Credit, "300.00")
	entry.Status = ""

	result, err := reconcile.Reconcile([]domain.Transaction{entry}, baseRequest())
	require.NoError(t, err)

	assert.True(t, result.TotalCredit.Equal(dec("300.00")))
	assert.Equal(t, 1, result.TransactionCount)
}

func TestReconcile_ZeroAmountIncluded(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-03-10", domain.Credit, "0.00"),
		txn("2024-03-11", domain.Credit, "300.00"),
	}

	result, err := reconcile.Reconcile(transactions, baseRequest())
	require.NoError(t, err)

	assert.True(t, result.TotalCredit.Equal(dec("300.00")))
	assert.Equal(t, 2, result.TransactionCount)
}

func TestReconcile_ClientAndBankFilters(t *testing.T) {
	alpha := txn("2024-03-10", domain.Credit, "100.00")
	alpha.ClientName = "Alpha Corp"
	alpha.BankName = "HDFC"

	beta := txn("2024-03-11", domain.Credit, "200.00")
	beta.ClientName = "Beta Ltd"
	beta.BankName = "ICICI"

	transactions := []domain.Transaction{alpha, beta}

	t.Run("client filter is exact, case-insensitive and trimmed", func(t *testing.T) {
		req := baseRequest()
		req.ClientFilter = "  alpha corp "

		result, err := reconcile.Reconcile(transactions, req)
		require.NoError(t, err)
		assert.True(t, result.TotalCredit.Equal(dec("100.00")))
		assert.Equal(t, 1, result.TransactionCount)
	})

	t.Run("substring does not match", func(t *testing.T) {
		req := baseRequest()
		req.ClientFilter = "Alpha"

		result, err := reconcile.Reconcile(transactions, req)
		require.NoError(t, err)
		assert.Equal(t, domain.PendingConfirm, result.MatchStatus)
	})

	t.Run("bank filter", func(t *testing.T) {
		req := baseRequest()
		req.BankFilter = "icici"

		result, err := reconcile.Reconcile(transactions, req)
		require.NoError(t, err)
		assert.True(t, result.TotalCredit.Equal(dec("200.00")))
	})

	t.Run("filter matching nothing yields PENDING_CONFIRM", func(t *testing.T) {
		req := baseRequest()
		req.ClientFilter = "Gamma GmbH"

		result, err := reconcile.Reconcile(transactions, req)
		require.NoError(t, err)
		assert.Equal(t, domain.PendingConfirm, result.MatchStatus)
	})
}

// Fractional cents must sum exactly; this is the reason currency amounts are
// decimals rather than binary floats.
func TestReconcile_FractionalCentsSumExactly(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-03-10", domain.Credit, "100.005"),
		txn("2024-03-11", domain.Credit, "100.005"),
	}
	req := baseRequest()
	req.OpeningBalance = decimal.Zero
	req.BankBalance = dec("200.01")

	result, err := reconcile.Reconcile(transactions, req)
	require.NoError(t, err)

	assert.True(t, result.TotalCredit.Equal(dec("200.01")), "totalCredit = %s", result.TotalCredit)
	assert.True(t, result.Difference.IsZero(), "difference = %s", result.Difference)
	assert.Equal(t, domain.Matched, result.MatchStatus)
}

func TestReconcile_SubCentDifferenceMatches(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-03-10", domain.Credit, "100.004"),
	}
	req := baseRequest()
	req.OpeningBalance = decimal.Zero
	req.BankBalance = dec("100.00")

	result, err := reconcile.Reconcile(transactions, req)
	require.NoError(t, err)

	assert.True(t, result.Difference.Equal(dec("0.004")))
	assert.Equal(t, domain.Matched, result.MatchStatus)
}

func TestReconcile_ExactCentDifferenceIsUnmatched(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-03-10", domain.Credit, "100.01"),
	}
	req := baseRequest()
	req.OpeningBalance = decimal.Zero
	req.BankBalance = dec("100.00")

	result, err := reconcile.Reconcile(transactions, req)
	require.NoError(t, err)

	// |difference| == epsilon is outside the strict tolerance.
	assert.Equal(t, domain.Unmatched, result.MatchStatus)
}

func TestReconcile_Invariants(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-03-02", domain.Credit, "123.45"),
		txn("2024-03-05", domain.Debit, "67.89"),
		txn("2024-03-09", domain.Credit, "0.01"),
		txn("2024-03-21", domain.Debit, "1000.00"),
	}
	req := baseRequest()

	result, err := reconcile.Reconcile(transactions, req)
	require.NoError(t, err)

	wantSystem := req.OpeningBalance.Add(result.TotalCredit).Sub(result.TotalDebit)
	assert.True(t, result.SystemBalance.Equal(wantSystem))
	assert.True(t, result.Difference.Equal(result.SystemBalance.Sub(req.BankBalance)))
}

func TestReconcile_Idempotent(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-03-02", domain.Credit, "123.45"),
		txn("2024-03-05", domain.Debit, "67.89"),
	}

	first, err := reconcile.Reconcile(transactions, baseRequest())
	require.NoError(t, err)
	second, err := reconcile.Reconcile(transactions, baseRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReconcile_OrderIndependent(t *testing.T) {
	transactions := []domain.Transaction{
		txn("2024-03-02", domain.Credit, "123.45"),
		txn("2024-03-05", domain.Debit, "67.89"),
		txn("2024-03-09", domain.Credit, "0.01"),
		txn("2024-03-21", domain.Debit, "1000.00"),
		txn("2024-03-28", domain.Credit, "54.30"),
	}

	want, err := reconcile.Reconcile(transactions, baseRequest())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]domain.Transaction, len(transactions))
		copy(shuffled, transactions)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := reconcile.Reconcile(shuffled, baseRequest())
		require.NoError(t, err)
		assert.True(t, got.TotalCredit.Equal(want.TotalCredit))
		assert.True(t, got.TotalDebit.Equal(want.TotalDebit))
		assert.True(t, got.SystemBalance.Equal(want.SystemBalance))
		assert.Equal(t, want.MatchStatus, got.MatchStatus)
	}
}
