package dto

import (
	"time"

	"github.com/minibank/minibank/internal/core/domain"
)

// ListClientsParams defines query parameters for the admin client directory.
type ListClientsParams struct {
	Limit  int `form:"limit,default=100"`
	Offset int `form:"offset,default=0"`
}

// AdminClientResponse is the directory view of a client. It deliberately
// carries no credential material.
type AdminClientResponse struct {
	ClientID      string    `json:"clientID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsBlacklisted bool      `json:"isBlacklisted"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToggleBlacklistRequest identifies the client whose blacklist flag to flip.
type ToggleBlacklistRequest struct {
	ClientID string `json:"clientID" binding:"required"`
}

// ListClientsResponse wraps the directory listing.
type ListClientsResponse struct {
	Clients []AdminClientResponse `json:"clients"`
}

// ToAdminClientResponse converts a domain.Client to its directory view.
func ToAdminClientResponse(c *domain.Client) AdminClientResponse {
	return AdminClientResponse{
		ClientID:      c.ClientID,
		Name:          c.Name,
		Email:         c.Email,
		IsBlacklisted: c.IsBlacklisted,
		CreatedAt:     c.CreatedAt,
	}
}

// ToListClientsResponse converts a slice of domain.Client to ListClientsResponse DTO
func ToListClientsResponse(clients []domain.Client) ListClientsResponse {
	responses := make([]AdminClientResponse, len(clients))
	for i, c := range clients {
		responses[i] = ToAdminClientResponse(&c)
	}
	return ListClientsResponse{Clients: responses}
}
