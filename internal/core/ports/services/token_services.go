package services

import (
	"context"
	"time"

	"github.com/minibank/minibank/internal/core/domain"
)

// TokenSvcFacade mints and verifies the signed identity tokens carried on
// every request.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed token asserting the client's id.
	// Returns the token string and its expiry time.
	GenerateAccessToken(ctx context.Context, client *domain.Client) (string, time.Time, error)

	// VerifyToken checks signature and expiry and returns the subject client
	// id. Every structural or cryptographic failure collapses to
	// apperrors.ErrUnauthorized.
	VerifyToken(ctx context.Context, tokenString string) (string, error)
}
