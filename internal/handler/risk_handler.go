package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartpantry/internal/port"
)

// RiskHandler proxies item lists to the external risk analysis service.
type RiskHandler struct {
	scorer port.RiskScorer
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(scorer port.RiskScorer) *RiskHandler {
	return &RiskHandler{scorer: scorer}
}

// Score handles POST /api/v1/risk-score
func (h *RiskHandler) Score(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}
	if h.scorer == nil {
		RespondError(c, http.StatusServiceUnavailable, "RISK_DISABLED", "risk scoring is not configured")
		return
	}

	var input struct {
		Items []string `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	scores, err := h.scorer.Score(c.Request.Context(), input.Items)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, scores)
}
