package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/minibank/minibank/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClientByEmail retrieves a client by its unique email address.
	FindClientByEmail(ctx context.Context, email string) (*domain.Client, error)

	// FindClients retrieves a paginated list of all clients.
	FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client. Returns apperrors.ErrDuplicate when
	// the email is already taken.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's mutable details (name, avatar).
	UpdateClient(ctx context.Context, client domain.Client) error

	// ToggleBlacklist atomically flips the blacklist flag of the target client
	// and returns the updated record.
	ToggleBlacklist(ctx context.Context, clientID string) (*domain.Client, error)
}

// ClientTransactionSupport defines operations that support ledger admission control
type ClientTransactionSupport interface {
	// FindClientByIDForUpdate selects a client row and locks it for update
	// within the given transaction, serializing ledger writers per client.
	FindClientByIDForUpdate(ctx context.Context, tx pgx.Tx, clientID string) (*domain.Client, error)
}

// ClientRepositoryFacade combines all client-related repository interfaces.
// This is a facade for consumers that need access to all operations.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
	ClientTransactionSupport
}
