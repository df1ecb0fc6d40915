package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/minibank/minibank/internal/apperrors"
	"github.com/minibank/minibank/internal/core/domain"
	portsrepo "github.com/minibank/minibank/internal/core/ports/repositories"
	portssvc "github.com/minibank/minibank/internal/core/ports/services"
	"github.com/minibank/minibank/internal/dto"
	"github.com/minibank/minibank/internal/middleware"
)

// ledgerService provides the ledger reader and writer for client transaction
// logs. The log is the system of record; balance is always derived, never
// stored.
type ledgerService struct {
	clientRepo      portsrepo.ClientRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryWithTx
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(transactionRepo portsrepo.TransactionRepositoryWithTx, clientRepo portsrepo.ClientRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		clientRepo:      clientRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// SubmitTransaction validates and appends a ledger entry.
//
// The admission checks run in a fixed order and fail fast with no partial
// effect: transaction type, amount, client existence and blacklist, and for
// withdrawals the overdraft invariant. The blacklist is re-checked here even
// though the HTTP layer also gates on it, because the writer must stay safe
// for callers that bypass that layer.
//
// The existence/blacklist/overdraft checks and the append run inside one
// database transaction holding a FOR UPDATE lock on the client row. That lock
// serializes all writers for one client, so two concurrent withdrawals can
// never both pass the balance check against a stale view. Writers for
// different clients do not contend.
func (s *ledgerService) SubmitTransaction(ctx context.Context, clientID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txnType := domain.TransactionType(req.Type)
	if !txnType.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTransactionType, req.Type)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	tx, err := s.transactionRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin ledger transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	// Ignored if the transaction commits.
	defer s.transactionRepo.Rollback(ctx, tx)

	client, err := s.clientRepo.FindClientByIDForUpdate(ctx, tx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Account vanished between token verification and submission;
			// treat the session as invalidated.
			return nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to lock client for ledger write", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to lock client %s: %w", clientID, err)
	}

	if client.IsBlacklisted {
		logger.Warn("Ledger write rejected for blacklisted client")
		return nil, apperrors.ErrClientRestricted
	}

	if txnType == domain.Withdrawal {
		balance, err := s.transactionRepo.DeriveBalanceInTx(ctx, tx, clientID)
		if err != nil {
			logger.Error("Failed to derive balance for admission check", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to derive balance: %w", err)
		}
		if req.Amount.GreaterThan(balance) {
			logger.Warn("Withdrawal rejected for insufficient funds",
				slog.String("requested", req.Amount.String()),
				slog.String("balance", balance.String()))
			return nil, apperrors.ErrInsufficientFunds
		}
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		ClientID:        clientID,
		TransactionType: txnType,
		Amount:          req.Amount,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		logger.Error("Failed to append transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	if err := s.transactionRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit ledger transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit ledger transaction: %w", err)
	}

	logger.Info("Transaction admitted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.TransactionType)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// GetStatement returns the derived balance and a page of history, newest
// first. The balance folds over the complete log regardless of pagination;
// ordering is a presentation concern only.
func (s *ledgerService) GetStatement(ctx context.Context, clientID string, params dto.ListTransactionsParams) (*dto.StatementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transactions, nextToken, err := s.transactionRepo.ListTransactionsByClientID(ctx, clientID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	balance, err := s.transactionRepo.DeriveBalance(ctx, clientID)
	if err != nil {
		logger.Error("Failed to derive balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to derive balance: %w", err)
	}

	return &dto.StatementResponse{
		Balance:      balance,
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}
