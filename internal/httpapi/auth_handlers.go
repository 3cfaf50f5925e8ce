package httpapi

import (
	"net/http"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/obs"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates credentials, sets both token cookies and returns the
// pair in the body as well; cookie-only vs body delivery is a deployment
// choice and both stay valid simultaneously.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json")
		return
	}

	result, err := h.Sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		obs.Login(auth.KindOf(err).String())
		respondErr(c, err)
		return
	}
	obs.Login("ok")

	h.Cookies.SetPair(c, result.Pair)
	respondOK(c, http.StatusOK, "login successful", gin.H{
		"user":         toUserPayload(result.User),
		"expiresIn":    result.ExpiresIn,
		"accessToken":  result.Pair.AccessToken,
		"refreshToken": result.Pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh rotates the token pair. The refresh token is read from the cookie
// first, with a body fallback for non-browser clients.
func (h Handlers) Refresh(c *gin.Context) {
	token, err := c.Cookie(auth.RefreshCookieName)
	if err != nil || token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}

	result, err := h.Sessions.Refresh(c.Request.Context(), token)
	if err != nil {
		respondErr(c, err)
		return
	}

	h.Cookies.SetPair(c, result.Pair)
	respondOK(c, http.StatusOK, "token refreshed", gin.H{
		"user":         toUserPayload(result.User),
		"expiresIn":    result.ExpiresIn,
		"accessToken":  result.Pair.AccessToken,
		"refreshToken": result.Pair.RefreshToken,
	})
}

// Logout clears both cookies. There is no server-side revocation list;
// already-issued tokens stay valid until they expire.
func (h Handlers) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	respondOK(c, http.StatusOK, "logged out", nil)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword proves the current password before setting a new one.
// Runs behind the authentication gate.
func (h Handlers) ChangePassword(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json")
		return
	}

	if err := h.Sessions.ChangePassword(c.Request.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "password changed", nil)
}

// Me returns the authenticated principal.
func (h Handlers) Me(c *gin.Context) {
	principal, ok := auth.PrincipalFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}
	respondOK(c, http.StatusOK, "ok", gin.H{
		"userId":       principal.UserID,
		"username":     principal.Username,
		"roleId":       int(principal.Role),
		"roleName":     principal.Role.Name(),
		"hospitalCode": principal.HospitalCode,
	})
}
