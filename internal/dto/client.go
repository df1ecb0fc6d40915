package dto

import (
	"time"

	"github.com/minibank/minibank/internal/core/domain"
)

// ClientResponse defines the client data exposed to callers. The password
// credential is excluded unconditionally.
type ClientResponse struct {
	ClientID      string    `json:"clientID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsAdmin       bool      `json:"isAdmin"`
	IsBlacklisted bool      `json:"isBlacklisted"`
	AvatarURL     *string   `json:"avatarURL,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UpdateClientRequest defines the data allowed for updating a client profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateClientRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarURL"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		Name:          c.Name,
		Email:         c.Email,
		IsAdmin:       c.IsAdmin,
		IsBlacklisted: c.IsBlacklisted,
		AvatarURL:     c.AvatarURL,
		CreatedAt:     c.CreatedAt,
	}
}
