package auth

import (
	"context"
	"time"
)

// Directory is the user-storage surface the auth core consumes. The core
// needs lookup-by-id, lookup-by-username and the two writes authentication
// performs (last-login stamp, password change). Implementations may pool
// connections internally but must not be a bare mutable global.
type Directory interface {
	// FindByID returns the row regardless of IsActive; callers decide how
	// an inactive account surfaces.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindActiveByUsername matches active rows only; username uniqueness is
	// guaranteed only among active users.
	FindActiveByUsername(ctx context.Context, username string) (*User, error)

	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string, at time.Time) error
}
