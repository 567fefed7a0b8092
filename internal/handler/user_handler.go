package handler

import (
	"dexboard/backend/internal/middleware"
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/service"
	"dexboard/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler handles profile and account endpoints of the signed in user
type UserHandler struct {
	userService *service.UserService
	auth        *AuthHandler
}

// NewUserHandler creates a new user handler. The auth handler is used to end the session on account deletion.
func NewUserHandler(userService *service.UserService, auth *AuthHandler) *UserHandler {
	return &UserHandler{
		userService: userService,
		auth:        auth,
	}
}

// UpdateProfile updates current user's profile
// PATCH /api/v1/auth/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccessWithMessage(c, gin.H{"user": user}, "Profile updated successfully")
}

// ChangePassword changes current user's password
// POST /api/v1/auth/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccessWithMessage(c, nil, "Password changed successfully")
}

// DeleteAccount deletes the current user with everything owned and ends the session
// DELETE /api/v1/auth/account
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		util.SendError(c, err)
		return
	}

	// The account is gone; a failed revocation only leaves a token that no longer resolves to a user
	_ = h.auth.authService.Logout(c.Request.Context(), middleware.ClaimsFromContext(c))
	h.auth.clearSessionCookie(c)

	util.SendSuccessWithMessage(c, nil, "Account deleted successfully")
}
