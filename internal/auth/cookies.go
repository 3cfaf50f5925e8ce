package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// CookieWriter sets and clears the token cookies. Both are httpOnly with
// SameSite=Strict; Secure is on in production. Each cookie's maxAge matches
// the corresponding token TTL.
type CookieWriter struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (w CookieWriter) SetPair(c *gin.Context, pair TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, pair.AccessToken, int(w.AccessTTL.Seconds()), "/", "", w.Secure, true)
	c.SetCookie(RefreshCookieName, pair.RefreshToken, int(w.RefreshTTL.Seconds()), "/", "", w.Secure, true)
}

func (w CookieWriter) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, "", -1, "/", "", w.Secure, true)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", w.Secure, true)
}
