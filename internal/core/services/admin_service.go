package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/minibank/minibank/internal/apperrors"
	"github.com/minibank/minibank/internal/core/domain"
	portsrepo "github.com/minibank/minibank/internal/core/ports/repositories"
	portssvc "github.com/minibank/minibank/internal/core/ports/services"
	"github.com/minibank/minibank/internal/dto"
	"github.com/minibank/minibank/internal/middleware"
)

// adminService is the client directory available to admins.
type adminService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewAdminService creates a new AdminService.
func NewAdminService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.AdminSvcFacade {
	return &adminService{clientRepo: clientRepo}
}

// Ensure adminService implements the portssvc.AdminSvcFacade interface
var _ portssvc.AdminSvcFacade = (*adminService)(nil)

// requireAdmin resolves the caller and enforces the admin role. A vanished
// caller fails like an invalid token; a present non-admin caller is forbidden.
func (s *adminService) requireAdmin(ctx context.Context, callerID string) (*domain.Client, error) {
	caller, err := s.clientRepo.FindClientByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve caller %s: %w", callerID, err)
	}
	if !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return caller, nil
}

// ListClients returns the client directory. Password credentials never leave
// the repository layer through this path.
func (s *adminService) ListClients(ctx context.Context, callerID string, params dto.ListClientsParams) ([]domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		logger.Warn("Authorization failed for ListClients", slog.String("error", err.Error()))
		return nil, err
	}

	clients, err := s.clientRepo.FindClients(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list clients", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	logger.Info("Clients listed", slog.Int("count", len(clients)))
	return clients, nil
}

// ToggleBlacklist flips the blacklist flag of the target client. The flip is
// an explicit toggle, not a one-way ban: two calls restore the original state.
func (s *adminService) ToggleBlacklist(ctx context.Context, callerID string, targetClientID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		logger.Warn("Authorization failed for ToggleBlacklist", slog.String("error", err.Error()))
		return nil, err
	}

	if targetClientID == "" {
		return nil, fmt.Errorf("%w: target client id is required", apperrors.ErrValidation)
	}

	updated, err := s.clientRepo.ToggleBlacklist(ctx, targetClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Blacklist toggle target not found", slog.String("target_client_id", targetClientID))
			return nil, err
		}
		logger.Error("Failed to toggle blacklist", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to toggle blacklist for client %s: %w", targetClientID, err)
	}

	logger.Info("Blacklist toggled",
		slog.String("target_client_id", targetClientID),
		slog.Bool("is_blacklisted", updated.IsBlacklisted))
	return updated, nil
}
