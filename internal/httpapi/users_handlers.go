package httpapi

import (
	"net/http"
	"strconv"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/users"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	RoleID       int    `json:"roleId"`
	HospitalCode string `json:"hospitalCode"`
}

func (h Handlers) CreateUser(c *gin.Context) {
	actor, ok := auth.PrincipalFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json")
		return
	}

	user, err := h.Users.Create(c.Request.Context(), actor, users.CreateRequest{
		Username:     req.Username,
		Password:     req.Password,
		Role:         auth.Role(req.RoleID),
		HospitalCode: req.HospitalCode,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "user created", toUserPayload(user))
}

func (h Handlers) ListUsers(c *gin.Context) {
	actor, ok := auth.PrincipalFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}

	list, err := h.Users.List(c.Request.Context(), actor)
	if err != nil {
		respondErr(c, err)
		return
	}
	payload := make([]userPayload, 0, len(list))
	for _, u := range list {
		payload = append(payload, toUserPayload(u))
	}
	respondOK(c, http.StatusOK, "ok", payload)
}

func (h Handlers) GetUser(c *gin.Context) {
	actor, ok := auth.PrincipalFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.Users.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "ok", toUserPayload(user))
}

type updateUserRequest struct {
	RoleID       *int    `json:"roleId"`
	HospitalCode *string `json:"hospitalCode"`
}

func (h Handlers) UpdateUser(c *gin.Context) {
	actor, ok := auth.PrincipalFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json")
		return
	}

	update := users.UpdateRequest{HospitalCode: req.HospitalCode}
	if req.RoleID != nil {
		role := auth.Role(*req.RoleID)
		update.Role = &role
	}

	user, err := h.Users.Update(c.Request.Context(), actor, id, update)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "user updated", toUserPayload(user))
}

// DeactivateUser soft-retires the account; the row is kept.
func (h Handlers) DeactivateUser(c *gin.Context) {
	actor, ok := auth.PrincipalFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Users.Deactivate(c.Request.Context(), actor, id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "user deactivated", nil)
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (h Handlers) ResetUserPassword(c *gin.Context) {
	actor, ok := auth.PrincipalFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json")
		return
	}

	if err := h.Users.ResetPassword(c.Request.Context(), actor, id, req.NewPassword); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "password reset", nil)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid user id")
		return 0, false
	}
	return id, true
}
