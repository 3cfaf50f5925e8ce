package rbac

import (
	"context"

	"medreport-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// Guards are pure functions of the principal (EvaluateRole, EvaluateScope,
// Policy.Decide); the gin handlers below only adapt them to the transport.
// They run strictly after auth.RequireAccessToken.

// EvaluateRole checks the numeric hierarchy: pass iff the principal holds at
// least the required privilege.
func EvaluateRole(p auth.Principal, required auth.Role) error {
	if p.Role.AtLeast(required) {
		return nil
	}
	return auth.ErrPermissionDenied
}

// EvaluateScope derives the caller's hospital scope, failing closed when a
// restricted principal has no hospital to scope to.
func EvaluateScope(p auth.Principal) (Scope, error) {
	scope := ScopeFor(p)
	if !scope.Assigned() {
		return Scope{}, auth.ErrHospitalNotAssigned
	}
	return scope, nil
}

// RequireRole allows principals holding at least the required role.
func RequireRole(required auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c.Request.Context())
		if !ok {
			auth.AbortError(c, auth.ErrAuthenticationRequired)
			return
		}
		if err := EvaluateRole(p, required); err != nil {
			auth.AbortError(c, err)
			return
		}
		c.Next()
	}
}

// RequireCapability routes every non-hierarchy check through the single
// policy entry point.
func RequireCapability(policy *Policy, capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c.Request.Context())
		if !ok {
			auth.AbortError(c, auth.ErrAuthenticationRequired)
			return
		}
		allowed, err := policy.Decide(c.Request.Context(), p, capability)
		if err != nil {
			auth.AbortError(c, auth.ErrServiceUnavailable)
			return
		}
		if !allowed {
			auth.AbortError(c, auth.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}

// WithHospitalScope narrows the effective query for the request: it injects
// the caller's Scope into the context for downstream handlers, regardless of
// any client-supplied hospital filter. A scoped principal with no hospital
// terminates here.
func WithHospitalScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c.Request.Context())
		if !ok {
			auth.AbortError(c, auth.ErrAuthenticationRequired)
			return
		}
		scope, err := EvaluateScope(p)
		if err != nil {
			auth.AbortError(c, err)
			return
		}
		c.Request = c.Request.WithContext(WithScope(c.Request.Context(), scope))
		c.Next()
	}
}

type scopeKey struct{}

// WithScope stores the resolved hospital scope in the context.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFrom extracts the hospital scope resolved by WithHospitalScope.
func ScopeFrom(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok
}
