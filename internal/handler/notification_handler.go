package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsync/internal/model"
	"soulsync/internal/service"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// GetNotifications returns the authenticated user's notifications, newest
// first
// GET /api/v1/users/me/notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")
	unreadOnly := c.Query("unread_only") == "true"

	notifications, err := h.notificationService.List(c.Request.Context(), userID.(string), unreadOnly)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount returns the unread notification count
// GET /api/v1/users/me/notifications/count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, _ := c.Get("userID")

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get notification count")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationAsRead marks one notification as read. Unknown ids are a
// no-op, so the endpoint always succeeds for the owner.
// PUT /api/v1/users/me/notifications/:id/read
func (h *NotificationHandler) MarkNotificationAsRead(c *gin.Context) {
	userID, _ := c.Get("userID")
	notificationID := c.Param("id")

	if err := h.notificationService.MarkRead(c.Request.Context(), userID.(string), notificationID); err != nil {
		respondError(c, h.logger, err, "Failed to update notification")
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkAllAsRead marks every notification as read
// PUT /api/v1/users/me/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	count, err := h.notificationService.MarkAllRead(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, h.logger, err, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, model.NotificationMarkResponse{Success: true, MarkedCount: count})
}

// ClearNotifications deletes the user's entire notification partition
// DELETE /api/v1/users/me/notifications
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")

	if err := h.notificationService.Clear(c.Request.Context(), userID.(string)); err != nil {
		respondError(c, h.logger, err, "Failed to clear notifications")
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateNotification creates a notification for any user (admin only)
// POST /api/v1/admin/notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var create model.NotificationCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.notificationService.Append(
		c.Request.Context(),
		create.UserID,
		create.Type,
		create.Message,
		create.TargetID,
	)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create notification")
		return
	}

	c.JSON(http.StatusCreated, notification)
}
