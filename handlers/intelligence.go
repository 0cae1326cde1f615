package handlers

import (
	"net/http"

	"obrafacil/services/intelligence"
	"obrafacil/utils"

	"github.com/gin-gonic/gin"
)

// AIHandler exposes the AI-assisted endpoints.
type AIHandler struct {
	AIService intelligence.AIService
}

func NewAIHandler(svc intelligence.AIService) *AIHandler {
	return &AIHandler{AIService: svc}
}

// SummarizeReviewsHandler handles GET /api/ai/providers/:id/review-summary.
func (h *AIHandler) SummarizeReviewsHandler(c *gin.Context) {
	summary, err := h.AIService.SummarizeReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

type recommendRequest struct {
	Need string `json:"need" binding:"required,min=10"`
}

// RecommendProvidersHandler handles POST /api/ai/recommendations.
func (h *AIHandler) RecommendProvidersHandler(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recs, err := h.AIService.RecommendProviders(c.Request.Context(), req.Need)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}
