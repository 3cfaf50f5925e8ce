package auth

import "time"

// User is the persisted account record. Accounts are soft-retired via
// IsActive; rows are never hard-deleted. Username is unique among active
// users only, so lookups for authentication must filter on IsActive.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	// HospitalCode scopes the account to one hospital's records.
	// Empty means no hospital assigned; superadmins ignore it entirely.
	HospitalCode string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Hospital is referenced, not owned, by the auth core.
type Hospital struct {
	ID   int64
	Code string
	Name string
}

// Principal is the authenticated identity for a single request. It is built
// fresh from a verified token plus a directory lookup and never persisted.
type Principal struct {
	UserID       int64
	Username     string
	Role         Role
	HospitalCode string
}

// PrincipalFor derives the request principal from a directory row.
func PrincipalFor(u *User) Principal {
	return Principal{
		UserID:       u.ID,
		Username:     u.Username,
		Role:         u.Role,
		HospitalCode: u.HospitalCode,
	}
}
