package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minibank/minibank/internal/apperrors"
	"github.com/minibank/minibank/internal/core/domain"
	portsrepo "github.com/minibank/minibank/internal/core/ports/repositories"
	portssvc "github.com/minibank/minibank/internal/core/ports/services"
	"github.com/minibank/minibank/internal/dto"
	"github.com/minibank/minibank/internal/middleware"
	"github.com/minibank/minibank/internal/utils"
)

// clientService is the credential store and profile service.
type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

// Ensure clientService implements the portssvc.ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// Register creates a new client with a bcrypt-hashed credential. The raw
// password is never stored.
func (s *clientService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password during registration", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:      uuid.NewString(),
		Name:          req.Name,
		Email:         email,
		PasswordHash:  hash,
		IsAdmin:       false,
		IsBlacklisted: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	// The unique index on email is the authority on duplicates; a pre-check
	// would still race with concurrent registrations.
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Registration rejected for duplicate email")
			return nil, err
		}
		logger.Error("Failed to save client during registration", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register client: %w", err)
	}

	logger.Info("Client registered", slog.String("client_id", client.ClientID))
	return &client, nil
}

// Authenticate verifies an email/password pair. An unknown email and a wrong
// password are indistinguishable to the caller, preventing account
// enumeration.
func (s *clientService) Authenticate(ctx context.Context, email, password string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientRepo.FindClientByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to look up client during authentication", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !utils.CheckPasswordHash(password, client.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return client, nil
}

// GetClientByID resolves a verified token subject to the client record.
func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to get client by ID", slog.String("error", err.Error()))
		}
		return nil, err
	}
	return client, nil
}

// UpdateClient updates the caller's own profile. Only display name and avatar
// are mutable here; admin and blacklist flags have their own authority.
func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == nil && req.AvatarURL == nil {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.AvatarURL != nil {
		client.AvatarURL = req.AvatarURL
	}
	client.LastUpdatedAt = time.Now().UTC()

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, err)
	}

	logger.Info("Client profile updated", slog.String("client_id", clientID))
	return client, nil
}
