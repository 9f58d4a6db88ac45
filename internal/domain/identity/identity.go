// Package identity models the authenticated caller: users, their roles, and
// the session tokens that resolve to them. The lifecycle core only ever sees
// the resulting Principal.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthenticated indicates a missing, unknown or expired credential
var ErrUnauthenticated = errors.New("unauthenticated")

// Role defines the access levels in the system
type Role string

const (
	RoleApplicant   Role = "applicant"
	RoleUnderwriter Role = "underwriter"
	RoleSystemAdmin Role = "system_admin"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleApplicant, RoleUnderwriter, RoleSystemAdmin:
		return true
	}
	return false
}

// Principal is the authenticated identity attached to a request
type Principal struct {
	UserID uuid.UUID
	Role   Role
	Name   string
}

// User is a registered account
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Session is an issued opaque credential
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Authenticator resolves an opaque token into a Principal.
// Returns ErrUnauthenticated when the token is unknown or expired.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Principal, error)
}
