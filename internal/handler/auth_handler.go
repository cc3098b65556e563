package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_store/internal/middleware"
	"github.com/GTDGit/gtd_store/internal/service"
	"github.com/GTDGit/gtd_store/internal/utils"
)

type AuthHandler struct {
	authService *service.AdminAuthService
	rateLimiter *middleware.InvalidAuthRateLimiter
}

func NewAuthHandler(authService *service.AdminAuthService, rateLimiter *middleware.InvalidAuthRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, rateLimiter: rateLimiter}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	ip := c.ClientIP()
	if h.rateLimiter.Blocked(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid login attempts")
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.rateLimiter.RecordFailure(ip)
		handleError(c, err, "Failed to log in")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
	})
}
