package services

import (
	"context"

	"github.com/minibank/minibank/internal/core/domain"
	"github.com/minibank/minibank/internal/dto"
)

// ClientReaderSvc defines read operations on clients.
type ClientReaderSvc interface {
	// GetClientByID resolves a client id (typically a verified token subject)
	// to the client record. Returns apperrors.ErrNotFound when absent.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
}

// ClientSvcFacade is the credential store and profile service for clients.
type ClientSvcFacade interface {
	ClientReaderSvc

	// Register creates a new client with a hashed credential. Returns
	// apperrors.ErrDuplicate when the email is already registered.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Client, error)

	// Authenticate verifies an email/password pair. Both an unknown email and
	// a wrong password collapse to apperrors.ErrUnauthorized.
	Authenticate(ctx context.Context, email, password string) (*domain.Client, error)

	// UpdateClient updates the caller's own mutable profile fields.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
}
