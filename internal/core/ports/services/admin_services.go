package services

import (
	"context"

	"github.com/minibank/minibank/internal/core/domain"
	"github.com/minibank/minibank/internal/dto"
)

// AdminSvcFacade is the directory service available to admin clients only.
// Every method resolves the caller first and returns apperrors.ErrUnauthorized
// when the caller no longer exists, or apperrors.ErrForbidden when the caller
// is not an admin.
type AdminSvcFacade interface {
	// ListClients returns all clients. Password credentials are never included.
	ListClients(ctx context.Context, callerID string, params dto.ListClientsParams) ([]domain.Client, error)

	// ToggleBlacklist flips the blacklist flag of the target client and
	// returns the updated record. Returns apperrors.ErrNotFound when the
	// target is absent. Two calls restore the original state.
	ToggleBlacklist(ctx context.Context, callerID string, targetClientID string) (*domain.Client, error)
}
