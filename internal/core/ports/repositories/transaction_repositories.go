package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/minibank/minibank/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for ledger data
type TransactionReader interface {
	// ListTransactionsByClientID retrieves a page of transactions for a client,
	// newest first, using token-based pagination. It returns the transactions,
	// a token for the next page (nil when exhausted), and an error.
	ListTransactionsByClientID(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// DeriveBalance computes the client's balance as a fold over the full
	// persisted log: deposits minus withdrawals. The balance is never stored.
	DeriveBalance(ctx context.Context, clientID string) (decimal.Decimal, error)

	// DeriveBalanceInTx is DeriveBalance executed inside a transaction, so the
	// admission check observes the same serialized view the append will use.
	DeriveBalanceInTx(ctx context.Context, tx pgx.Tx, clientID string) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for ledger data
type TransactionWriter interface {
	// SaveTransactionInTx appends a transaction within the given database
	// transaction. The ledger is append-only; there is no update or delete.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all ledger-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction lifecycle capabilities.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
