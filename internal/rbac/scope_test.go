package rbac

import (
	"errors"
	"testing"

	"medreport-platform/internal/auth"
)

func TestScopeFor(t *testing.T) {
	if s := ScopeFor(principal(auth.RoleSuperadmin, "")); !s.Unrestricted {
		t.Fatalf("superadmin must be unrestricted")
	}
	// Superadmin scope ignores any assigned hospital.
	if s := ScopeFor(principal(auth.RoleSuperadmin, "000000001")); !s.Unrestricted {
		t.Fatalf("superadmin with a hospital is still unrestricted")
	}

	s := ScopeFor(principal(auth.RoleAdmin, "000000001"))
	if s.Unrestricted || s.HospitalCode != "000000001" {
		t.Fatalf("admin scope must be confined to the assigned hospital: %+v", s)
	}
}

func TestScopeAssignedFailsClosed(t *testing.T) {
	if (Scope{Unrestricted: true}).Assigned() != true {
		t.Fatalf("unrestricted scope is always assigned")
	}
	if (Scope{HospitalCode: "000000002"}).Assigned() != true {
		t.Fatalf("scoped with a hospital is assigned")
	}
	if (Scope{}).Assigned() {
		t.Fatalf("restricted scope without a hospital must not match anything")
	}
}

func TestEvaluateScope(t *testing.T) {
	if _, err := EvaluateScope(principal(auth.RoleUser, "")); !errors.Is(err, auth.ErrHospitalNotAssigned) {
		t.Fatalf("expected ErrHospitalNotAssigned, got %v", err)
	}
	scope, err := EvaluateScope(principal(auth.RoleUser, "000000003"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if scope.HospitalCode != "000000003" {
		t.Fatalf("unexpected scope: %+v", scope)
	}
}

func TestCanManageTargetUser(t *testing.T) {
	cases := []struct {
		actor  auth.Role
		target auth.Role
		want   error
	}{
		{auth.RoleSuperadmin, auth.RoleSuperadmin, nil},
		{auth.RoleSuperadmin, auth.RoleAdmin, nil},
		{auth.RoleSuperadmin, auth.RoleUser, nil},
		{auth.RoleAdmin, auth.RoleUser, nil},
		{auth.RoleAdmin, auth.RoleAdmin, auth.ErrRoleHierarchyViolation},
		{auth.RoleAdmin, auth.RoleSuperadmin, auth.ErrRoleHierarchyViolation},
		{auth.RoleUser, auth.RoleUser, auth.ErrPermissionDenied},
		{auth.RoleUser, auth.RoleAdmin, auth.ErrPermissionDenied},
	}
	for _, tc := range cases {
		err := CanManageTargetUser(principal(tc.actor, ""), tc.target)
		if !errors.Is(err, tc.want) && !(err == nil && tc.want == nil) {
			t.Fatalf("actor %v target %v: expected %v, got %v", tc.actor, tc.target, tc.want, err)
		}
	}
}
