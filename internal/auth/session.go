package auth

import (
	"context"
	"strings"
	"time"

	"medreport-platform/pkg/logger"
)

// Throttle bounds repeated login attempts per key. It is advisory: a
// throttle backend failure degrades open and never blocks authentication.
type Throttle interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// SessionService orchestrates the credential lifecycle:
// Unauthenticated -> Authenticated -> AccessExpired (refresh still valid) -> Terminated.
// Logout is intentionally stateless; no server-side revocation list exists,
// so terminating a session means the client discards its tokens.
type SessionService struct {
	dir      Directory
	tokens   *Manager
	hasher   Hasher
	throttle Throttle
	clock    func() time.Time
}

type SessionOption func(*SessionService)

// WithThrottle enables per-username login throttling.
func WithThrottle(t Throttle) SessionOption {
	return func(s *SessionService) { s.throttle = t }
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) SessionOption {
	return func(s *SessionService) {
		if fn != nil {
			s.clock = fn
		}
	}
}

func NewSessionService(dir Directory, tokens *Manager, hasher Hasher, opts ...SessionOption) *SessionService {
	s := &SessionService{
		dir:    dir,
		tokens: tokens,
		hasher: hasher,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionResult carries a freshly minted pair and the account it belongs to.
type SessionResult struct {
	User *User
	Pair TokenPair
	// ExpiresIn is the configured access TTL as a duration string, returned
	// to clients alongside the tokens.
	ExpiresIn string
}

// Login authenticates username+password and mints a token pair. Unknown
// username, wrong password and inactive account all fail with the identical
// ErrInvalidCredentials so responses never reveal which check failed.
// Updating LastLoginAt is the only write on this path.
func (s *SessionService) Login(ctx context.Context, username, password string) (SessionResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return SessionResult{}, ErrInvalidCredentials
	}

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, strings.ToLower(username))
		if err != nil {
			logger.From(ctx).Warn("login throttle unavailable", "err", err)
		} else if !ok {
			return SessionResult{}, ErrTooManyAttempts
		}
	}

	user, err := s.dir.FindActiveByUsername(ctx, username)
	if err != nil {
		if err == ErrUserNotFound {
			return SessionResult{}, ErrInvalidCredentials
		}
		return SessionResult{}, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return SessionResult{}, err
	}
	if !ok {
		return SessionResult{}, ErrInvalidCredentials
	}

	now := s.clock().UTC()
	if err := s.dir.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return SessionResult{}, err
	}
	user.LastLoginAt = &now

	pair, err := s.tokens.IssuePair(now, user)
	if err != nil {
		return SessionResult{}, err
	}
	return s.result(user, pair), nil
}

// Refresh verifies a refresh token, re-fetches the account and mints a
// brand-new pair (full rotation; the presented refresh token is never
// reused verbatim). No password proof is required on this path, but an
// account that has gone missing or inactive since issuance fails exactly
// like bad credentials.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (SessionResult, error) {
	now := s.clock().UTC()
	claims, err := s.tokens.VerifyRefresh(refreshToken, now)
	if err != nil {
		return SessionResult{}, err
	}

	user, err := s.dir.FindByID(ctx, claims.UserID)
	if err != nil {
		if err == ErrUserNotFound {
			return SessionResult{}, ErrInvalidCredentials
		}
		return SessionResult{}, err
	}
	if !user.IsActive {
		return SessionResult{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(now, user)
	if err != nil {
		return SessionResult{}, err
	}
	return s.result(user, pair), nil
}

// ChangePassword proves the current password, rejects a new password equal
// to the current one, then persists the new hash.
func (s *SessionService) ChangePassword(ctx context.Context, userID int64, current, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidArgument
	}

	user, err := s.dir.FindByID(ctx, userID)
	if err != nil {
		if err == ErrUserNotFound {
			return ErrInvalidCredentials
		}
		return err
	}

	ok, err := s.hasher.Verify(current, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	same, err := s.hasher.Verify(newPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if same {
		return ErrSamePassword
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.dir.UpdatePassword(ctx, userID, digest, s.clock().UTC())
}

func (s *SessionService) result(user *User, pair TokenPair) SessionResult {
	return SessionResult{
		User:      user,
		Pair:      pair,
		ExpiresIn: s.tokens.AccessTTL().String(),
	}
}
