package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/finledger/ledger_backend/internal/apperrors"
	"github.com/finledger/ledger_backend/internal/core/domain"
	portsrepo "github.com/finledger/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/finledger/ledger_backend/internal/core/ports/services"
	"github.com/finledger/ledger_backend/internal/core/services"
	"github.com/finledger/ledger_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindForReconciliation(ctx context.Context, clientName, bankName string, fromDate, toDate time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, clientName, bankName, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DistinctClientNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) SummaryTotals(ctx context.Context, clientName string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, clientName)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock AuditService (shared across the service suites) ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogAction(ctx context.Context, action string, userID *string, details string) {
	m.Called(ctx, action, userID, details)
}

func (m *MockAuditService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLog, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockTransactionRepository
	mockAudit *MockAuditService
	service   portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockAudit = new(MockAuditService)
	suite.service = services.NewTransactionService(suite.mockRepo,
		services.WithTransactionAuditService(suite.mockAudit))
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Date:        "2024-03-05",
		Description: "Invoice 1042",
		Amount:      "1500.50",
		Type:        "CREDIT",
		ClientName:  "Acme Corp",
		BankName:    "First National",
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID != "" &&
			t.Type == domain.Credit &&
			t.Amount.Equal(decimal.RequireFromString("1500.50")) &&
			t.Status == domain.StatusCompleted &&
			t.Category == "Miscellaneous" &&
			t.CreatedBy == creatorUserID
	})).Return(nil).Once()
	suite.mockAudit.On("LogAction", ctx, "TRANSACTION_CREATED", mock.Anything, mock.Anything).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal("Miscellaneous", txn.Category)
	suite.Equal(creatorUserID, txn.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        "2024-03-05",
		Description: "Bad amount",
		Amount:      "not-a-number",
		Type:        "DEBIT",
	}

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	kind, ok := apperrors.ValidationKindOf(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.InvalidBalance, kind)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidDate() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        "05/03/2024",
		Description: "Bad date",
		Amount:      "10",
		Type:        "DEBIT",
	}

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	kind, ok := apperrors.ValidationKindOf(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.InvalidDateRange, kind)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SaveError() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        "2024-03-05",
		Description: "Invoice",
		Amount:      "10",
		Type:        "DEBIT",
	}
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(expectedErr).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, expectedErr)
	suite.mockAudit.AssertNotCalled(suite.T(), "LogAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ParsesDateFilters() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{
		FromDate: "2024-03-01",
		ToDate:   "2024-03-31",
		Client:   "Acme Corp",
		Limit:    50,
	}

	suite.mockRepo.On("ListTransactions", ctx, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.FromDate != nil && f.FromDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.ToDate != nil && f.ToDate.Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)) &&
			f.ClientName == "Acme Corp" && f.Limit == 50
	})).Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.ListTransactions(ctx, params)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_InvertedRange() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{FromDate: "2024-03-31", ToDate: "2024-03-01"}

	_, err := suite.service.ListTransactions(ctx, params)

	suite.Require().Error(err)
	kind, ok := apperrors.ValidationKindOf(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.InvalidDateRange, kind)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestSummary_Success() {
	ctx := context.Background()

	suite.mockRepo.On("SummaryTotals", ctx, "").
		Return(decimal.RequireFromString("1500"), decimal.RequireFromString("200"), nil).Once()

	summary, err := suite.service.Summary(ctx, "")

	suite.Require().NoError(err)
	suite.True(summary.TotalCredit.Equal(decimal.RequireFromString("1500")))
	suite.True(summary.TotalDebit.Equal(decimal.RequireFromString("200")))
	suite.True(summary.Balance.Equal(decimal.RequireFromString("1300")))
}

func (suite *TransactionServiceTestSuite) TestSummary_RepoErrorPropagates() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("SummaryTotals", ctx, "Acme Corp").
		Return(decimal.Zero, decimal.Zero, expectedErr).Once()

	summary, err := suite.service.Summary(ctx, "Acme Corp")

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, expectedErr)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindTransactionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, "missing", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: "txn-1",
		Type:          domain.Debit,
		Amount:        decimal.RequireFromString("42"),
		ClientName:    "Acme Corp",
	}

	suite.mockRepo.On("FindTransactionByID", ctx, "txn-1").Return(existing, nil).Once()
	suite.mockRepo.On("DeleteTransaction", ctx, "txn-1").Return(nil).Once()
	suite.mockAudit.On("LogAction", ctx, "TRANSACTION_DELETED", mock.Anything, mock.Anything).Once()

	err := suite.service.DeleteTransaction(ctx, "txn-1", userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

// --- CSV import ---

func (suite *TransactionServiceTestSuite) TestImportCSV_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	csvData := strings.Join([]string{
		"date,type,client_name,description,category,status,amount,bank_name",
		"2024-03-01,CREDIT,Acme Corp,Invoice 1001,Sales,COMPLETED,1000.00,First National",
		"2024-03-02,DEBIT,Acme Corp,Refund 88,,PENDING,50.25,First National",
	}, "\n")

	suite.mockRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 2 &&
			txns[0].Amount.Equal(decimal.RequireFromString("1000.00")) &&
			txns[1].Status == domain.StatusPending &&
			txns[1].Category == "Miscellaneous" &&
			txns[0].CreatedBy == userID
	})).Return(nil).Once()
	suite.mockAudit.On("LogAction", ctx, "TRANSACTION_CSV_IMPORT", mock.Anything, mock.Anything).Once()

	res, err := suite.service.ImportCSV(ctx, strings.NewReader(csvData), userID)

	suite.Require().NoError(err)
	suite.Equal(2, res.TransactionsSaved)
	suite.Equal(0, res.RowsSkipped)
	suite.Empty(res.RowErrors)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestImportCSV_SkipsBadRows() {
	ctx := context.Background()
	userID := uuid.NewString()
	csvData := strings.Join([]string{
		"date,type,client_name,description,category,status,amount,bank_name",
		"2024-03-01,CREDIT,Acme Corp,Invoice 1001,Sales,COMPLETED,1000.00,First National",
		"not-a-date,CREDIT,Acme Corp,Broken row,Sales,COMPLETED,10,First National",
		"2024-03-03,TRANSFER,Acme Corp,Bad type,Sales,COMPLETED,10,First National",
		"2024-03-04,DEBIT,Acme Corp,Bad amount,Sales,COMPLETED,ten,First National",
	}, "\n")

	suite.mockRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 1
	})).Return(nil).Once()
	suite.mockAudit.On("LogAction", ctx, "TRANSACTION_CSV_IMPORT", mock.Anything, mock.Anything).Once()

	res, err := suite.service.ImportCSV(ctx, strings.NewReader(csvData), userID)

	suite.Require().NoError(err)
	suite.Equal(1, res.TransactionsSaved)
	suite.Equal(3, res.RowsSkipped)
	suite.Len(res.RowErrors, 3)
	suite.Contains(res.RowErrors[0], "row 3")
}

func (suite *TransactionServiceTestSuite) TestImportCSV_MissingRequiredColumn() {
	ctx := context.Background()
	csvData := "date,type,description,amount\n2024-03-01,CREDIT,No client column,10"

	res, err := suite.service.ImportCSV(ctx, strings.NewReader(csvData), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(res)
	suite.Contains(err.Error(), "client_name")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestImportCSV_HeaderCaseInsensitive() {
	ctx := context.Background()
	csvData := strings.Join([]string{
		"Date,Type,Client,Description,Amount",
		"2024-03-01,credit,Acme Corp,Invoice,12.34",
	}, "\n")

	suite.mockRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 1 && txns[0].Type == domain.Credit && txns[0].Status == domain.StatusCompleted
	})).Return(nil).Once()
	suite.mockAudit.On("LogAction", ctx, "TRANSACTION_CSV_IMPORT", mock.Anything, mock.Anything).Once()

	res, err := suite.service.ImportCSV(ctx, strings.NewReader(csvData), uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(1, res.TransactionsSaved)
}

func (suite *TransactionServiceTestSuite) TestImportCSV_EmptyFileOnlyHeader() {
	ctx := context.Background()
	csvData := "date,type,client_name,description,amount\n"

	suite.mockAudit.On("LogAction", ctx, "TRANSACTION_CSV_IMPORT", mock.Anything, mock.Anything).Once()

	res, err := suite.service.ImportCSV(ctx, strings.NewReader(csvData), uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(0, res.TransactionsSaved)
	suite.Equal(0, res.RowsSkipped)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactions", mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
