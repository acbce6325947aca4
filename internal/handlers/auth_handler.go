package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobdeck/jobboard-api/internal/dtos"
	"github.com/jobdeck/jobboard-api/internal/middleware"
	"github.com/jobdeck/jobboard-api/internal/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(a *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: a}
}

// Register is POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	resp, err := h.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, resp)
}

// Login is POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	resp, err := h.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, resp)
}

// Me is GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	OK(c, middleware.Identity(c))
}

// UpdateProfile is PUT /auth/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	user, err := h.AuthService.UpdateProfile(c.Request.Context(), middleware.Identity(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, user)
}
