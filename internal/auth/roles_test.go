package auth

import "testing"

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleSuperadmin, RoleSuperadmin, true},
		{RoleSuperadmin, RoleAdmin, true},
		{RoleSuperadmin, RoleUser, true},
		{RoleAdmin, RoleSuperadmin, false},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleUser, RoleUser, true},
		{Role(0), RoleUser, false},
		{Role(4), RoleUser, false},
		{RoleSuperadmin, Role(0), false},
	}
	for _, tc := range cases {
		if got := tc.role.AtLeast(tc.required); got != tc.want {
			t.Fatalf("%v.AtLeast(%v) = %v, want %v", tc.role, tc.required, got, tc.want)
		}
	}
}

func TestRoleNames(t *testing.T) {
	if RoleSuperadmin.Name() != "superadmin" || RoleAdmin.Name() != "admin" || RoleUser.Name() != "user" {
		t.Fatalf("unexpected role names")
	}
	if Role(9).Name() != "unknown" {
		t.Fatalf("out-of-range role must name as unknown")
	}
	if Role(9).Valid() || Role(0).Valid() {
		t.Fatalf("out-of-range roles must be invalid")
	}
}
