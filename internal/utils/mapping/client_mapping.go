package mapping

import (
	"github.com/minibank/minibank/internal/core/domain"
	"github.com/minibank/minibank/internal/models"
)

// ToModelClient converts a domain Client to its persistence model.
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:      d.ClientID,
		Name:          d.Name,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		IsAdmin:       d.IsAdmin,
		IsBlacklisted: d.IsBlacklisted,
		AvatarURL:     d.AvatarURL,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a persistence model Client to the domain representation.
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:      m.ClientID,
		Name:          m.Name,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		IsAdmin:       m.IsAdmin,
		IsBlacklisted: m.IsBlacklisted,
		AvatarURL:     m.AvatarURL,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to domain Clients.
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
