package rbac

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medreport-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asPrincipal stands in for the authentication gate in these tests.
func asPrincipal(p auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

func serve(t *testing.T, handlers ...gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	r.GET("/x", chain...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func wireError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestRequireRoleDeniesWeakerRole(t *testing.T) {
	w := serve(t, asPrincipal(principal(auth.RoleUser, "000000001")), RequireRole(auth.RoleAdmin))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if code := wireError(t, w); code != "PermissionDenied" {
		t.Fatalf("expected PermissionDenied, got %q", code)
	}
}

func TestRequireRoleAllowsStrongerRole(t *testing.T) {
	w := serve(t, asPrincipal(principal(auth.RoleSuperadmin, "")), RequireRole(auth.RoleAdmin))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	w := serve(t, RequireRole(auth.RoleUser))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if code := wireError(t, w); code != "AuthenticationRequired" {
		t.Fatalf("expected AuthenticationRequired, got %q", code)
	}
}

func TestRequireCapability(t *testing.T) {
	policy := NewPolicy(NewMemoryGrants(
		Grant{Role: auth.RoleAdmin, Capability: CapabilityExportReports, Allowed: true},
	))

	w := serve(t, asPrincipal(principal(auth.RoleAdmin, "000000001")),
		RequireCapability(policy, CapabilityExportReports))
	if w.Code != http.StatusOK {
		t.Fatalf("granted capability: expected 200, got %d", w.Code)
	}

	w = serve(t, asPrincipal(principal(auth.RoleUser, "000000001")),
		RequireCapability(policy, CapabilityExportReports))
	if w.Code != http.StatusForbidden {
		t.Fatalf("ungranted capability: expected 403, got %d", w.Code)
	}
}

func TestRequireCapabilityGrantSourceFailure(t *testing.T) {
	policy := NewPolicy(failingGrants{})

	w := serve(t, asPrincipal(principal(auth.RoleAdmin, "000000001")),
		RequireCapability(policy, CapabilityExportReports))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestWithHospitalScopeInjectsScope(t *testing.T) {
	var got Scope
	var ok bool
	r := gin.New()
	r.GET("/x", asPrincipal(principal(auth.RoleAdmin, "000000004")), WithHospitalScope(), func(c *gin.Context) {
		got, ok = ScopeFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !ok || got.Unrestricted || got.HospitalCode != "000000004" {
		t.Fatalf("unexpected scope: ok=%v %+v", ok, got)
	}
}

func TestWithHospitalScopeFailsClosedWithoutHospital(t *testing.T) {
	w := serve(t, asPrincipal(principal(auth.RoleUser, "")), WithHospitalScope())
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if code := wireError(t, w); code != "HospitalNotAssigned" {
		t.Fatalf("expected HospitalNotAssigned, got %q", code)
	}
}
