package handler

import (
	"net/http"
	"strconv"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
	"github.com/dmkor/sparkmatch-backend/internal/usecase/moderation"
	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationUseCase *moderation.ModerationUseCase
}

func NewModerationHandler(moderationUseCase *moderation.ModerationUseCase) *ModerationHandler {
	return &ModerationHandler{moderationUseCase: moderationUseCase}
}

// BanRequest represents a ban flag change
type BanRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	Banned *bool `json:"banned" binding:"required"`
}

// SetBan handles POST /moderation/ban
func (h *ModerationHandler) SetBan(c *gin.Context) {
	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.moderationUseCase.SetBanned(c.Request.Context(), req.UserID, *req.Banned); err != nil {
		if err == domain.ErrProfileNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update ban flag"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "ban flag updated"})
}

// GetBan handles GET /moderation/:user_id/banned
func (h *ModerationHandler) GetBan(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
		return
	}

	banned, err := h.moderationUseCase.IsBanned(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to check ban flag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "banned": banned})
}
