package handlers

import (
	"net/http"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/middleware"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetUsers lists the user directory. Admin only.
func (h *UserHandler) GetUsers(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	users, err := h.users.ListUsers(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}
