package rbac

import "medreport-platform/internal/auth"

// Capability codes. Keep these stable; non-hierarchy codes are persisted in
// the role_permissions grant table.
const (
	CapabilityIsSuperadmin = "hierarchy.superadmin"
	CapabilityIsAdmin      = "hierarchy.admin"
	CapabilityIsUser       = "hierarchy.user"

	CapabilityManageUsers   = "users.manage"
	CapabilityReadVisits    = "visits.read"
	CapabilityWriteVisits   = "visits.write"
	CapabilityExportReports = "reports.export"
)

// hierarchyCapabilities are decided by numeric role comparison alone and
// never consult the grant table.
var hierarchyCapabilities = map[string]auth.Role{
	CapabilityIsSuperadmin: auth.RoleSuperadmin,
	CapabilityIsAdmin:      auth.RoleAdmin,
	CapabilityIsUser:       auth.RoleUser,
}
