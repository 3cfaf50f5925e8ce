package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"medreport-platform/internal/obs"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "

	defaultLookupTimeout = 3 * time.Second
)

// RequireAccessToken is the authentication gate. It extracts an access token
// from the Authorization header or the access cookie (header wins when both
// are present), verifies it, re-checks the account against the directory and
// attaches the Principal to the request context. No writes happen here.
//
// It does not perform authorization; guards in internal/rbac run after it.
func RequireAccessToken(m *Manager, dir Directory, lookupTimeout time.Duration) gin.HandlerFunc {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			obs.TokenVerification("missing")
			AbortError(c, ErrAuthenticationRequired)
			return
		}

		claims, err := m.VerifyAccess(token, time.Now())
		if err != nil {
			obs.TokenVerification(KindOf(err).String())
			AbortError(c, err)
			return
		}

		// The token is cryptographically valid; the account must still
		// exist and be active to qualify. A stalled directory is a
		// service fault, not an authentication failure.
		lookupCtx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
		user, err := dir.FindByID(lookupCtx, claims.UserID)
		cancel()
		if err != nil {
			switch {
			case errors.Is(err, ErrUserNotFound):
				obs.TokenVerification("unknown_user")
				AbortError(c, ErrAuthenticationRequired)
			case errors.Is(err, context.DeadlineExceeded):
				obs.TokenVerification("directory_timeout")
				AbortError(c, ErrServiceUnavailable)
			default:
				obs.TokenVerification("directory_error")
				AbortError(c, ErrServiceUnavailable)
			}
			return
		}
		if !user.IsActive {
			obs.TokenVerification("inactive_user")
			AbortError(c, ErrAuthenticationRequired)
			return
		}

		obs.TokenVerification("ok")
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), PrincipalFor(user)))
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
	if raw != "" && strings.HasPrefix(raw, bearerPrefix) {
		tok := strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
		if tok != "" {
			return tok, true
		}
	}
	if tok, err := c.Cookie(AccessCookieName); err == nil && tok != "" {
		return tok, true
	}
	return "", false
}
