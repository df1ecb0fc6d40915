package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minibank/minibank/internal/apperrors"
	"github.com/minibank/minibank/internal/core/domain"
	portsrepo "github.com/minibank/minibank/internal/core/ports/repositories"
	"github.com/minibank/minibank/internal/models"
	"github.com/minibank/minibank/internal/utils/mapping"
	"github.com/minibank/minibank/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// balanceQuery derives the balance as a pure fold over the append-only log.
// The result is order-independent, so no ORDER BY is needed.
const balanceQuery = `
	SELECT COALESCE(SUM(CASE WHEN transaction_type = 'DEPOSIT' THEN amount ELSE -amount END), 0)
	FROM transactions
	WHERE client_id = $1;
`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// SaveTransactionInTx appends a ledger entry within the caller's transaction.
// The caller holds the client row lock, which makes the preceding balance
// check and this insert a single serialized unit per client.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, client_id, transaction_type, amount, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.ClientID,
		m.TransactionType,
		m.Amount,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// DeriveBalance computes the current balance over the full committed log.
func (r *PgxTransactionRepository) DeriveBalance(ctx context.Context, clientID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, balanceQuery, clientID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to derive balance for client %s: %w", clientID, err)
	}
	return balance, nil
}

// DeriveBalanceInTx computes the balance inside the given transaction so the
// admission check sees the serialized view guarded by the client row lock.
func (r *PgxTransactionRepository) DeriveBalanceInTx(ctx context.Context, tx pgx.Tx, clientID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, balanceQuery, clientID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to derive balance for client %s: %w", clientID, err)
	}
	return balance, nil
}

// ListTransactionsByClientID retrieves a page of the client's history, newest
// first, using a keyset token over (created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByClientID(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT transaction_id, client_id, transaction_type, amount, created_at
		FROM transactions
		WHERE client_id = $1
	`
	args := []interface{}{clientID}

	if nextToken != nil && *nextToken != "" {
		createdAt, transactionID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, createdAt, transactionID)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for client %s: %w", clientID, err)
	}
	defer rows.Close()

	txns := make([]models.Transaction, 0, limit+1)
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.TransactionID, &m.ClientID, &m.TransactionType, &m.Amount, &m.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		token = &t
	}

	return mapping.ToDomainTransactionSlice(txns), token, nil
}
