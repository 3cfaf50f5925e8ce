package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medreport-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

func adminBearer(t *testing.T, api testAPI, u *auth.User) func(*http.Request) {
	t.Helper()
	pair, err := api.tokens.IssuePair(time.Now(), u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}
}

func do(t *testing.T, api testAPI, method, path string, mutate func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestAdminGetUnknownUserIs404(t *testing.T) {
	su := seedAccount(t, 1, "root", "pw-root", auth.RoleSuperadmin, "")
	api := newTestAPI(t, su)

	w, env := do(t, api, http.MethodGet, "/v1/admin/users/999", adminBearer(t, api, su))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if env.Error != "NotFound" {
		t.Fatalf("expected NotFound, got %q", env.Error)
	}
	if env.Message == "internal error" {
		t.Fatalf("a missing account is not an internal fault")
	}
}

func TestAdminMutationsOnUnknownUserAre404(t *testing.T) {
	su := seedAccount(t, 1, "root", "pw-root", auth.RoleSuperadmin, "")
	api := newTestAPI(t, su)
	bearer := adminBearer(t, api, su)

	if w, env := do(t, api, http.MethodDelete, "/v1/admin/users/999", bearer); w.Code != http.StatusNotFound || env.Error != "NotFound" {
		t.Fatalf("delete: expected 404 NotFound, got %d %q", w.Code, env.Error)
	}

	w, env := postJSON(t, api.router, "/v1/admin/users/999/reset-password", gin.H{"newPassword": "new-pw"}, bearer)
	if w.Code != http.StatusNotFound || env.Error != "NotFound" {
		t.Fatalf("reset-password: expected 404 NotFound, got %d %q", w.Code, env.Error)
	}
}

func TestAdminGetExistingUser(t *testing.T) {
	su := seedAccount(t, 1, "root", "pw-root", auth.RoleSuperadmin, "")
	target := seedAccount(t, 2, "alice", "pw-alice", auth.RoleUser, "000000001")
	api := newTestAPI(t, su, target)

	w, env := do(t, api, http.MethodGet, "/v1/admin/users/2", adminBearer(t, api, su))
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if payload.ID != 2 || payload.Username != "alice" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
