package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPStatus maps an error Kind to its response status. 401 means the caller
// must (re)authenticate, 403 means the identity is known but not permitted.
func HTTPStatus(k Kind) int {
	switch k {
	case KindAuthenticationRequired, KindInvalidToken, KindTokenExpired, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindPermissionDenied, KindHospitalNotAssigned, KindRoleHierarchyViolation:
		return http.StatusForbidden
	case KindSamePassword, KindInvalidArgument:
		return http.StatusBadRequest
	case KindTooManyAttempts:
		return http.StatusTooManyRequests
	case KindNotFound:
		return http.StatusNotFound
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AbortError terminates the request with the envelope shape used by every
// failure in this API. Internal faults are masked; error text from the
// taxonomy is safe to return as-is.
func AbortError(c *gin.Context, err error) {
	kind := KindOf(err)
	message := err.Error()
	if kind == KindUnknown || kind == KindCorruptCredential {
		message = "internal error"
	}
	c.AbortWithStatusJSON(HTTPStatus(kind), gin.H{
		"success": false,
		"message": message,
		"error":   kind.String(),
	})
}
