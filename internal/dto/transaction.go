package dto

import (
	"time"

	"github.com/minibank/minibank/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload to submit a ledger entry.
// Amount positivity is enforced by the decimalgtzero binding and re-checked by
// the ledger writer.
type CreateTransactionRequest struct {
	Type   string          `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount decimal.Decimal `json:"amount" binding:"required,decimalgtzero"`
}

// TransactionResponse defines the data returned for a single ledger entry.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListTransactionsParams defines query parameters for reading the statement.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// StatementResponse combines the derived balance with a page of history.
// Balance is computed over the full log even when the history is paginated.
type StatementResponse struct {
	Balance      decimal.Decimal       `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          string(txn.TransactionType),
		Amount:        txn.Amount,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
