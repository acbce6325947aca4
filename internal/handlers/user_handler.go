package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobdeck/jobboard-api/internal/dtos"
	"github.com/jobdeck/jobboard-api/internal/middleware"
	"github.com/jobdeck/jobboard-api/internal/services"
)

type UserHandler struct {
	UserService *services.UserService
}

func NewUserHandler(u *services.UserService) *UserHandler {
	return &UserHandler{UserService: u}
}

// List is GET /admin/users?role=company
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.UserService.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, users)
}

// Get is GET /users/:id (admin or self)
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.UserService.Get(c.Request.Context(), c.Param("id"), middleware.Identity(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, user)
}

// Update is PUT /users/:id (admin, or self for profile fields)
func (h *UserHandler) Update(c *gin.Context) {
	var req dtos.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	user, err := h.UserService.Update(c.Request.Context(), c.Param("id"), middleware.Identity(c), &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, user)
}

// Delete is DELETE /users/:id (admin only, never self)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.UserService.Delete(c.Request.Context(), c.Param("id"), middleware.Identity(c)); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "user deleted")
}
