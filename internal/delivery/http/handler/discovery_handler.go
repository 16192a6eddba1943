package handler

import (
	"net/http"

	"github.com/dmkor/sparkmatch-backend/internal/domain"
	"github.com/dmkor/sparkmatch-backend/internal/usecase/discovery"
	"github.com/gin-gonic/gin"
)

type DiscoveryHandler struct {
	discoveryUseCase *discovery.DiscoveryUseCase
}

func NewDiscoveryHandler(discoveryUseCase *discovery.DiscoveryUseCase) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryUseCase: discoveryUseCase}
}

// GetNext handles GET /discovery/next
func (h *DiscoveryHandler) GetNext(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	result, err := h.discoveryUseCase.NextCandidate(c.Request.Context(), userID.(int64))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to pick candidate"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DecideRequest represents a decision on a shown candidate
type DecideRequest struct {
	TargetID int64  `json:"target_id" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=like dislike"`
}

// Decide handles POST /discovery/decide
func (h *DiscoveryHandler) Decide(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.discoveryUseCase.Decide(c.Request.Context(), userID.(int64), req.TargetID, domain.Decision(req.Decision))
	if err != nil {
		if err == domain.ErrCannotLikeSelf {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to record decision"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ResetPass handles POST /discovery/reset-pass
func (h *DiscoveryHandler) ResetPass(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.discoveryUseCase.ResetPass(c.Request.Context(), userID.(int64)); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to reset pass"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "pass reset"})
}
