package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the persistence layer.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

// Transaction represents a row of the transactions table.
// Rows are insert-only; there is no update or delete path.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	ClientID        string          `db:"client_id"`
	TransactionType TransactionType `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	CreatedAt       time.Time       `db:"created_at"`
}
