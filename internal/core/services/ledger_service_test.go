package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/minibank/minibank/internal/apperrors"
	"github.com/minibank/minibank/internal/core/domain"
	portssvc "github.com/minibank/minibank/internal/core/ports/services"
	"github.com/minibank/minibank/internal/core/services"
	"github.com/minibank/minibank/internal/dto"
)

// --- Mock TransactionRepository (based on TransactionRepositoryWithTx usage) ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactionsByClientID(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, clientID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) DeriveBalance(ctx context.Context, clientID string) (decimal.Decimal, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) DeriveBalanceInTx(ctx context.Context, tx pgx.Tx, clientID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, clientID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockClientRepo *MockClientRepository
	mockTxnRepo    *MockTransactionRepository
	service        portssvc.LedgerSvcFacade
	clientID       string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockTxnRepo, suite.mockClientRepo)
	suite.clientID = uuid.NewString()
}

// expectTx sets up the Begin/Rollback pair every write path goes through.
func (suite *LedgerServiceTestSuite) expectTx() {
	suite.mockTxnRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockTxnRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()
}

// --- SubmitTransaction Tests ---

func (suite *LedgerServiceTestSuite) TestSubmitTransaction_DepositSuccess() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Type: "DEPOSIT", Amount: decimal.NewFromInt(100)}
	client := &domain.Client{ClientID: suite.clientID}

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, suite.clientID).
		Return(client, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ClientID == suite.clientID &&
			txn.TransactionType == domain.Deposit &&
			txn.Amount.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	txn, err := suite.service.SubmitTransaction(ctx, suite.clientID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.Deposit, txn.TransactionType)
	// Deposits never consult the balance.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeriveBalanceInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSubmitTransaction_WithdrawalSuccess() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Type: "WITHDRAWAL", Amount: decimal.NewFromInt(40)}
	client := &domain.Client{ClientID: suite.clientID}

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, suite.clientID).
		Return(client, nil).Once()
	suite.mockTxnRepo.On("DeriveBalanceInTx", mock.Anything, mock.Anything, suite.clientID).
		Return(decimal.NewFromInt(100), nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionType == domain.Withdrawal && txn.Amount.Equal(decimal.NewFromInt(40))
	})).Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	txn, err := suite.service.SubmitTransaction(ctx, suite.clientID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSubmitTransaction_WithdrawalEqualToBalance() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Type: "WITHDRAWAL", Amount: decimal.NewFromInt(100)}
	client := &domain.Client{ClientID: suite.clientID}

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, suite.clientID).
		Return(client, nil).Once()
	suite.mockTxnRepo.On("DeriveBalanceInTx", mock.Anything, mock.Anything, suite.clientID).
		Return(decimal.NewFromInt(100), nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).
		Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	// Withdrawing the exact balance is allowed; only exceeding it fails.
	txn, err := suite.service.SubmitTransaction(ctx, suite.clientID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSubmitTransaction_InvalidType() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Type: "TRANSFER", Amount: decimal.NewFromInt(10)}

	txn, err := suite.service.SubmitTransaction(ctx, suite.clientID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInvalidTransactionType)
	// Rejected before any database work.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSubmitTransaction_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		req := dto.CreateTransactionRequest{Type: "DEPOSIT", Amount: amount}

		txn, err := suite.service.SubmitTransaction(ctx, suite.clientID, req)

		suite.Require().Error(err)
		suite.Nil(txn)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSubmitTransaction_ClientNotFound() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Type: "DEPOSIT", Amount: decimal.NewFromInt(10)}

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, suite.clientID).
		Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.SubmitTransaction(ctx, suite.clientID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSubmitTransaction_BlacklistedClient() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Type: "DEPOSIT", Amount: decimal.NewFromInt(10)}
	client := &domain.Client{ClientID: suite.clientID, IsBlacklisted: true}

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, suite.clientID).
		Return(client, nil).Once()

	txn, err := suite.service.SubmitTransaction(ctx, suite.clientID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrClientRestricted)
	// A blacklisted client gets nothing appended, deposits included.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSubmitTransaction_InsufficientFunds() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Type: "WITHDRAWAL", Amount: decimal.NewFromInt(150)}
	client := &domain.Client{ClientID: suite.clientID}

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, suite.clientID).
		Return(client, nil).Once()
	suite.mockTxnRepo.On("DeriveBalanceInTx", mock.Anything, mock.Anything, suite.clientID).
		Return(decimal.NewFromInt(100), nil).Once()

	txn, err := suite.service.SubmitTransaction(ctx, suite.clientID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	// The rejected withdrawal must leave no trace in the log.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSubmitTransaction_CommitError() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Type: "DEPOSIT", Amount: decimal.NewFromInt(10)}
	client := &domain.Client{ClientID: suite.clientID}
	expectedErr := assert.AnError

	suite.expectTx()
	suite.mockClientRepo.On("FindClientByIDForUpdate", mock.Anything, mock.Anything, suite.clientID).
		Return(client, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transaction")).
		Return(nil).Once()
	suite.mockTxnRepo.On("Commit", mock.Anything, mock.Anything).Return(expectedErr).Once()

	txn, err := suite.service.SubmitTransaction(ctx, suite.clientID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, expectedErr)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- GetStatement Tests ---

func (suite *LedgerServiceTestSuite) TestGetStatement_Success() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{Limit: 50}
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), ClientID: suite.clientID, TransactionType: domain.Deposit, Amount: decimal.NewFromInt(100)},
		{TransactionID: uuid.NewString(), ClientID: suite.clientID, TransactionType: domain.Withdrawal, Amount: decimal.NewFromInt(30)},
	}

	suite.mockTxnRepo.On("ListTransactionsByClientID", ctx, suite.clientID, 50, (*string)(nil)).
		Return(txns, nil, nil).Once()
	suite.mockTxnRepo.On("DeriveBalance", ctx, suite.clientID).
		Return(decimal.NewFromInt(70), nil).Once()

	statement, err := suite.service.GetStatement(ctx, suite.clientID, params)

	suite.Require().NoError(err)
	suite.Require().NotNil(statement)
	suite.True(statement.Balance.Equal(decimal.NewFromInt(70)))
	suite.Len(statement.Transactions, 2)
	suite.Nil(statement.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetStatement_EmptyLedger() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{Limit: 50}

	suite.mockTxnRepo.On("ListTransactionsByClientID", ctx, suite.clientID, 50, (*string)(nil)).
		Return([]domain.Transaction{}, nil, nil).Once()
	suite.mockTxnRepo.On("DeriveBalance", ctx, suite.clientID).
		Return(decimal.Zero, nil).Once()

	statement, err := suite.service.GetStatement(ctx, suite.clientID, params)

	suite.Require().NoError(err)
	suite.True(statement.Balance.IsZero())
	suite.Empty(statement.Transactions)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetStatement_InvalidToken() {
	ctx := context.Background()
	badToken := "not-a-token"
	params := dto.ListTransactionsParams{Limit: 50, NextToken: &badToken}

	suite.mockTxnRepo.On("ListTransactionsByClientID", ctx, suite.clientID, 50, &badToken).
		Return(nil, nil, apperrors.ErrValidation).Once()

	statement, err := suite.service.GetStatement(ctx, suite.clientID, params)

	suite.Require().Error(err)
	suite.Nil(statement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeriveBalance", mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
