package handler

import (
	"net/http"

	"dexboard/backend/internal/middleware"
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/service"
	"dexboard/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionCookie describes the cookie carrying the session token
type SessionCookie struct {
	Name   string
	Secure bool
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
	cookie      SessionCookie
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, userService *service.UserService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cookie:      cookie,
	}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	authResp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	h.setSessionCookie(c, authResp.Token)
	util.SendCreated(c, authResp, "User registered successfully")
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.SendBindError(c, err)
		return
	}

	authResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		util.SendError(c, err)
		return
	}

	h.setSessionCookie(c, authResp.Token)
	util.SendSuccess(c, authResp)
}

// Logout revokes the current token and clears the cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.ClaimsFromContext(c)); err != nil {
		util.SendError(c, err)
		return
	}

	h.clearSessionCookie(c)
	util.SendSuccessWithMessage(c, nil, "Logged out successfully")
}

// GetMe returns current user info
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, err := util.CurrentUserID(c)
	if err != nil {
		util.SendError(c, err)
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		util.SendError(c, err)
		return
	}

	util.SendSuccess(c, gin.H{"user": user})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.authService.TokenDuration().Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}
