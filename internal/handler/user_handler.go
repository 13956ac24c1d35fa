package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsync/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetCurrentUser returns the authenticated user's account
// GET /api/v1/users/me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, _ := c.Get("userID")

	user, err := h.userService.GetByID(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers returns every account (admin only)
// GET /api/v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, users)
}
