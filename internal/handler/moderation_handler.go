package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsync/internal/service"
)

// ModerationHandler handles report review HTTP requests. Routes are gated to
// admin and professional roles.
type ModerationHandler struct {
	moderationService *service.ModerationService
	logger            *zap.Logger
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderationService *service.ModerationService, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
		logger:            logger,
	}
}

// PendingReports returns reports awaiting review
// GET /api/v1/moderation/reports
func (h *ModerationHandler) PendingReports(c *gin.Context) {
	reports, err := h.moderationService.PendingReports(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports, "total": len(reports)})
}

// DismissReport marks a report reviewed, keeping the content
// PUT /api/v1/moderation/reports/:id/dismiss
func (h *ModerationHandler) DismissReport(c *gin.Context) {
	actorID, _ := c.Get("userID")

	report, err := h.moderationService.Dismiss(c.Request.Context(), actorID.(string), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to dismiss report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// RemoveContent resolves a report and deletes the reported content
// PUT /api/v1/moderation/reports/:id/remove
func (h *ModerationHandler) RemoveContent(c *gin.Context) {
	actorID, _ := c.Get("userID")

	report, err := h.moderationService.Remove(c.Request.Context(), actorID.(string), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to remove content")
		return
	}

	c.JSON(http.StatusOK, report)
}
