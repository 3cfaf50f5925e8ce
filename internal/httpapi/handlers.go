package httpapi

import (
	"time"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/users"
	"medreport-platform/internal/visits"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse input, call internal services, return the envelope.
type Handlers struct {
	Sessions *auth.SessionService
	Users    *users.Service
	Visits   *visits.Service
	Cookies  auth.CookieWriter
}

// userPayload is the wire shape of an account. The password hash never
// leaves the server.
type userPayload struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	RoleID       int        `json:"roleId"`
	RoleName     string     `json:"roleName"`
	HospitalCode string     `json:"hospitalCode,omitempty"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func toUserPayload(u *auth.User) userPayload {
	return userPayload{
		ID:           u.ID,
		Username:     u.Username,
		RoleID:       int(u.Role),
		RoleName:     u.Role.Name(),
		HospitalCode: u.HospitalCode,
		IsActive:     u.IsActive,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
