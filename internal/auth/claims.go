package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the only claims shape this service signs or accepts.
// Access and refresh tokens share it but are signed with distinct secrets,
// so possession of one never implies possession of the other.
type Claims struct {
	jwt.RegisteredClaims

	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	RoleID       int       `json:"role_id"`
	HospitalCode string    `json:"hospital_code,omitempty"`
	TokenType    TokenType `json:"token_type"`
}

// Role returns the claim's role id as the ordered enum.
func (c Claims) Role() Role { return Role(c.RoleID) }
