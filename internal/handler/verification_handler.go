package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsync/internal/service"
)

// VerificationHandler handles the professional verification queue (admin
// only)
type VerificationHandler struct {
	verificationService *service.VerificationService
	logger              *zap.Logger
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationService *service.VerificationService, logger *zap.Logger) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		logger:              logger,
	}
}

// PendingProfessionals returns the pending verification queue
// GET /api/v1/admin/professionals
func (h *VerificationHandler) PendingProfessionals(c *gin.Context) {
	requests, err := h.verificationService.Pending(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to list pending professionals")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": requests, "total": len(requests)})
}

// VerifyProfessional approves a pending professional
// PUT /api/v1/admin/professionals/:id/verify
func (h *VerificationHandler) VerifyProfessional(c *gin.Context) {
	user, err := h.verificationService.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to verify professional")
		return
	}

	c.JSON(http.StatusOK, user)
}

// RejectProfessional rejects a pending professional and deletes the account
// DELETE /api/v1/admin/professionals/:id
func (h *VerificationHandler) RejectProfessional(c *gin.Context) {
	if err := h.verificationService.Reject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to reject professional")
		return
	}

	c.Status(http.StatusNoContent)
}
