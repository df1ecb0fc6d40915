package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry adds to or removes from a balance.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

// IsValid reports whether t is one of the two admissible transaction types.
func (t TransactionType) IsValid() bool {
	return t == Deposit || t == Withdrawal
}

// Transaction is an immutable entry in the append-only ledger.
// Note: Amount uses github.com/shopspring/decimal; it is strictly positive
// for both types, the type carries the sign.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	ClientID        string          `json:"clientID"`      // FK -> clients.client_id
	TransactionType TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// SignedAmount returns the amount with the sign implied by the transaction type.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
