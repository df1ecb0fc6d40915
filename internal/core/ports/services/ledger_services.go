package services

import (
	"context"

	"github.com/minibank/minibank/internal/core/domain"
	"github.com/minibank/minibank/internal/dto"
)

// LedgerSvcFacade is the ledger reader and writer for a single client's
// append-only transaction log.
type LedgerSvcFacade interface {
	// SubmitTransaction runs admission control and appends a transaction.
	// Failure modes, in check order: apperrors.ErrInvalidTransactionType,
	// apperrors.ErrValidation (non-positive amount), apperrors.ErrNotFound
	// (client vanished), apperrors.ErrClientRestricted (blacklisted),
	// apperrors.ErrInsufficientFunds (withdrawal exceeding balance).
	// No failure leaves a partially written transaction.
	SubmitTransaction(ctx context.Context, clientID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetStatement returns the derived balance and the transaction history,
	// newest first. The balance always folds over the complete log regardless
	// of history pagination.
	GetStatement(ctx context.Context, clientID string, params dto.ListTransactionsParams) (*dto.StatementResponse, error)
}
