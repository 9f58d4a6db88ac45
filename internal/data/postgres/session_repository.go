package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/clearbridge-loan-origination/internal/domain/identity"
	"github.com/clearbridge-loan-origination/internal/platform/persistence"
)

// SessionRepository implements the identity.SessionRepository interface
// for PostgreSQL
type SessionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(logger *slog.Logger, db *persistence.PostgresDB) identity.SessionRepository {
	return &SessionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// NewSessionRepositoryWithQuerier creates a repository on an explicit
// querier. Used by tests with a mock pool.
func NewSessionRepositoryWithQuerier(logger *slog.Logger, querier persistence.Querier) identity.SessionRepository {
	return &SessionRepository{
		querier: querier,
		logger:  logger,
	}
}

// Create stores a new session
func (r *SessionRepository) Create(ctx context.Context, session *identity.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.querier.Exec(ctx, query,
		session.Token,
		session.UserID,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create session", "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByToken retrieves a session by its token. Returns
// identity.ErrUnauthenticated when the token is unknown; expiry is checked
// by the caller.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*identity.Session, error) {
	query := `
		SELECT token, user_id, expires_at, created_at
		FROM sessions
		WHERE token = $1
	`

	var session identity.Session
	err := r.querier.QueryRow(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUnauthenticated
		}
		r.logger.Error("Failed to get session", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`

	_, err := r.querier.Exec(ctx, query, token)
	if err != nil {
		r.logger.Error("Failed to delete session", "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
