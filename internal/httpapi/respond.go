package httpapi

import (
	"errors"
	"net/http"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/users"

	"github.com/gin-gonic/gin"
)

// All responses share one envelope: {success, message, data} on success,
// {success, message, error} on failure. The error field is the taxonomy
// code, never localized text, so clients switch on it directly.

func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondErr(c *gin.Context, err error) {
	if errors.Is(err, users.ErrUsernameTaken) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"success": false,
			"message": err.Error(),
			"error":   "UsernameTaken",
		})
		return
	}
	auth.AbortError(c, err)
}

func respondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
		"error":   auth.KindInvalidArgument.String(),
	})
}
