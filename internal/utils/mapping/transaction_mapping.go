package mapping

import (
	"github.com/minibank/minibank/internal/core/domain"
	"github.com/minibank/minibank/internal/models"
)

// ToModelTransaction converts a domain Transaction to its persistence model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		ClientID:        d.ClientID,
		TransactionType: models.TransactionType(d.TransactionType),
		Amount:          d.Amount,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainTransaction converts a persistence model Transaction to the domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		ClientID:        m.ClientID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
