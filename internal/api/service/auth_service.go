package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clearbridge-loan-origination/internal/domain/identity"
)

// SessionAuthenticator resolves bearer tokens into principals using the
// Postgres-backed session and user stores
type SessionAuthenticator struct {
	sessions identity.SessionRepository
	users    identity.Repository
	logger   *slog.Logger
}

// NewSessionAuthenticator creates a session-based authenticator
func NewSessionAuthenticator(logger *slog.Logger, sessions identity.SessionRepository, users identity.Repository) identity.Authenticator {
	return &SessionAuthenticator{
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

// Authenticate resolves an opaque session token into a Principal. Unknown
// and expired tokens both surface as ErrUnauthenticated.
func (a *SessionAuthenticator) Authenticate(ctx context.Context, token string) (*identity.Principal, error) {
	if token == "" {
		return nil, identity.ErrUnauthenticated
	}

	session, err := a.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, identity.ErrUnauthenticated
	}

	user, err := a.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound{}) {
			a.logger.Warn("Session references missing user",
				"user_id", session.UserID.String())
			return nil, identity.ErrUnauthenticated
		}
		return nil, err
	}

	return &identity.Principal{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.FullName(),
	}, nil
}
