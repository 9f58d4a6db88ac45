// Package postgres provides PostgreSQL implementations of the identity
// repositories. User accounts and their sessions live in Postgres; loan
// application data lives in MongoDB.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/platform/persistence"
)

// UserRepository implements the identity.Repository interface for PostgreSQL
type UserRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewUserRepository(logger *slog.Logger, db *persistence.PostgresDB) identity.Repository {
	return &UserRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// NewUserRepositoryWithQuerier creates a repository on an explicit querier.
// Used by tests with a mock pool.
func NewUserRepositoryWithQuerier(logger *slog.Logger, querier persistence.Querier) identity.Repository {
	return &UserRepository{
		querier: querier,
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *UserRepository) WithTx(tx pgx.Tx) identity.Repository {
	return &UserRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new user
func (r *UserRepository) Create(ctx context.Context, user *identity.User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return identity.ErrDuplicateEmail{Email: user.Email}
		}
		r.logger.Error("Failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	query := `
		SELECT id, email, first_name, last_name, role, created_at
		FROM users
		WHERE id = $1
	`

	var user identity.User
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound{UserID: id}
		}
		r.logger.Error("Failed to get user", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email. Returns nil, nil when no user has
// the email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	query := `
		SELECT id, email, first_name, last_name, role, created_at
		FROM users
		WHERE email = $1
	`

	var user identity.User
	err := r.querier.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// GetByRole retrieves all users holding a role
func (r *UserRepository) GetByRole(ctx context.Context, role identity.Role) ([]*identity.User, error) {
	query := `
		SELECT id, email, first_name, last_name, role, created_at
		FROM users
		WHERE role = $1
		ORDER BY created_at
	`

	rows, err := r.querier.Query(ctx, query, role)
	if err != nil {
		r.logger.Error("Failed to query users by role", "role", string(role), "error", err)
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	defer rows.Close()

	var users []*identity.User
	for rows.Next() {
		var user identity.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Role,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
