package auth

import (
	"errors"
	"time"

	"medreport-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager signs and verifies the two token types. Each type has its own
// secret; a token signed with one never verifies against the other.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audience      string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= cfg.AccessTokenTTL {
		return nil, errors.New("refresh TTL must exceed access TTL")
	}

	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.JWTIssuer,
		audience:      cfg.JWTAudience,
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}, nil
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// IssuePair mints a fresh access+refresh pair from current user fields.
// Every pair carries new jti values, so two pairs minted back to back
// still differ by value.
func (m *Manager) IssuePair(now time.Time, u *User) (TokenPair, error) {
	accessExp := now.Add(m.accessTTL)
	access, err := m.issue(now, accessExp, TokenTypeAccess, u, m.accessSecret)
	if err != nil {
		return TokenPair{}, err
	}

	refreshExp := now.Add(m.refreshTTL)
	refresh, err := m.issue(now, refreshExp, TokenTypeRefresh, u, m.refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// VerifyAccess validates an access token. Expiry on a correctly signed token
// reports ErrTokenExpired; every other failure (bad signature, wrong secret,
// issuer/audience mismatch, wrong token type, missing claim) is
// ErrInvalidToken.
func (m *Manager) VerifyAccess(token string, now time.Time) (Claims, error) {
	return m.verify(token, TokenTypeAccess, m.accessSecret, now)
}

// VerifyRefresh validates a refresh token with the refresh secret.
func (m *Manager) VerifyRefresh(token string, now time.Time) (Claims, error) {
	return m.verify(token, TokenTypeRefresh, m.refreshSecret, now)
}

func (m *Manager) verify(tokenString string, expected TokenType, secret []byte, now time.Time) (Claims, error) {
	var claims Claims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}
	parser := jwt.NewParser(opts...)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		// Signature is checked before claims, so an expired token with a
		// forged signature still reads as invalid, not expired.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}

	if claims.TokenType != expected {
		return Claims{}, ErrInvalidToken
	}
	if claims.UserID <= 0 || claims.Username == "" || !claims.Role().Valid() {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

func (m *Manager) issue(now, exp time.Time, tokenType TokenType, u *User, secret []byte) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  audienceOrNil(m.audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
		UserID:       u.ID,
		Username:     u.Username,
		RoleID:       int(u.Role),
		HospitalCode: u.HospitalCode,
		TokenType:    tokenType,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func audienceOrNil(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}
	return jwt.ClaimStrings{aud}
}
