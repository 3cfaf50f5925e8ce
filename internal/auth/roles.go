package auth

// Role is the single ordered privilege tier. The numeric value is the
// operative ordering key: a lower value outranks a higher one.
// Role ids are persisted in the users table and embedded in token claims;
// keep them stable.
type Role int

const (
	RoleSuperadmin Role = 1
	RoleAdmin      Role = 2
	RoleUser       Role = 3
)

func (r Role) Valid() bool {
	return r >= RoleSuperadmin && r <= RoleUser
}

func (r Role) Name() string {
	switch r {
	case RoleSuperadmin:
		return "superadmin"
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

// AtLeast reports whether r holds at least the privilege of required.
// Invalid roles never qualify.
func (r Role) AtLeast(required Role) bool {
	if !r.Valid() || !required.Valid() {
		return false
	}
	return r <= required
}
