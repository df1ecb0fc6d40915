package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minibank/minibank/internal/apperrors"
	"github.com/minibank/minibank/internal/core/domain"
	portsrepo "github.com/minibank/minibank/internal/core/ports/repositories"
	"github.com/minibank/minibank/internal/models"
	"github.com/minibank/minibank/internal/utils/mapping"
)

const clientColumns = `client_id, name, email, password_hash, is_admin, is_blacklisted, avatar_url, created_at, last_updated_at`

type PgxClientRepository struct {
	pool *pgxpool.Pool
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{pool: pool}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row pgx.Row) (*models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.IsAdmin,
		&m.IsBlacklisted,
		&m.AvatarURL,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveClient persists a new client. The unique index on email reports
// duplicates as apperrors.ErrDuplicate.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (client_id, name, email, password_hash, is_admin, is_blacklisted, avatar_url, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ClientID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.IsAdmin,
		m.IsBlacklisted,
		m.AvatarURL,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, m.Email)
			}
		}
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`

	m, err := scanClient(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	d := mapping.ToDomainClient(*m)
	return &d, nil
}

// FindClientByEmail retrieves a client by its unique email.
func (r *PgxClientRepository) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1;`

	m, err := scanClient(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by email: %w", err)
	}

	d := mapping.ToDomainClient(*m)
	return &d, nil
}

// FindClients retrieves a paginated list of clients ordered by creation time.
func (r *PgxClientRepository) FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY created_at ASC, client_id ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]models.Client, 0, limit)
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}

	return mapping.ToDomainClientSlice(clients), nil
}

// UpdateClient updates the mutable profile fields of an existing client.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $2, avatar_url = $3, last_updated_at = $4
		WHERE client_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, m.ClientID, m.Name, m.AvatarURL, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ToggleBlacklist atomically flips is_blacklisted and returns the updated row.
// The single UPDATE keeps concurrent toggles last-writer-wins without ever
// losing the flip.
func (r *PgxClientRepository) ToggleBlacklist(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		UPDATE clients
		SET is_blacklisted = NOT is_blacklisted, last_updated_at = now()
		WHERE client_id = $1
		RETURNING ` + clientColumns + `;
	`
	m, err := scanClient(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle blacklist for client %s: %w", clientID, err)
	}

	d := mapping.ToDomainClient(*m)
	return &d, nil
}

// FindClientByIDForUpdate selects the client row and locks it within the given
// transaction. All ledger writers for one client serialize on this lock;
// writers for distinct clients do not contend.
func (r *PgxClientRepository) FindClientByIDForUpdate(ctx context.Context, tx pgx.Tx, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1 FOR UPDATE;`

	m, err := scanClient(tx.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock client %s for update: %w", clientID, err)
	}

	d := mapping.ToDomainClient(*m)
	return &d, nil
}
