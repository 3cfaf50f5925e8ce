package rbac

import "medreport-platform/internal/auth"

// Scope is the data-visibility constraint for one caller. When Unrestricted
// is false, downstream queries must carry HospitalCode; an empty code then
// matches nothing (fail closed) rather than everything.
type Scope struct {
	Unrestricted bool
	HospitalCode string
}

// Assigned reports whether the scope can match any rows at all.
func (s Scope) Assigned() bool {
	return s.Unrestricted || s.HospitalCode != ""
}

// ScopeFor derives the visibility constraint for a principal. Superadmins
// are exempt from hospital scoping entirely; everyone else is confined to
// their assigned hospital.
func ScopeFor(p auth.Principal) Scope {
	if p.Role == auth.RoleSuperadmin {
		return Scope{Unrestricted: true}
	}
	return Scope{HospitalCode: p.HospitalCode}
}

// CanManageTargetUser encodes the management hierarchy rule: superadmins
// manage anyone; admins manage only roles strictly below admin (never role 1
// or 2 accounts, including password resets); users manage no one.
func CanManageTargetUser(p auth.Principal, target auth.Role) error {
	switch p.Role {
	case auth.RoleSuperadmin:
		return nil
	case auth.RoleAdmin:
		if target > auth.RoleAdmin {
			return nil
		}
		return auth.ErrRoleHierarchyViolation
	default:
		return auth.ErrPermissionDenied
	}
}
