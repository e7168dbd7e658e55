package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborview/claimchat/backend/model"
	"github.com/harborview/claimchat/backend/pkg/logger"
	"github.com/harborview/claimchat/backend/service"
)

type ClaimsHandler struct {
	claims *service.ClaimStore
}

func NewClaimsHandler(claims *service.ClaimStore) *ClaimsHandler {
	return &ClaimsHandler{claims: claims}
}

// Create validates and records a new claim submission
func (h *ClaimsHandler) Create(c *gin.Context) {
	var sub model.ClaimSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	if err := service.ValidateSubmission(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	claim, err := h.claims.Create(ctx, &sub)
	if err != nil {
		logger.Error(ctx, "failed to create claim", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create claim. Please try again.",
		})
		return
	}

	logger.Info(ctx, "claim created",
		"claim_id", claim.ClaimID,
		"claim_type", claim.ClaimType,
		"using_mock_data", h.claims.UsingMockData(),
	)

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Claim created successfully",
		"claim":         claim,
		"usingMockData": h.claims.UsingMockData(),
	})
}
