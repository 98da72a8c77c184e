package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smartpantry/internal/pricing"
)

// PricingHandler handles cross-store price comparison endpoints.
type PricingHandler struct {
	comparer *pricing.Comparer
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(comparer *pricing.Comparer) *PricingHandler {
	return &PricingHandler{comparer: comparer}
}

// Compare handles GET /api/v1/prices/compare?q=item
func (h *PricingHandler) Compare(c *gin.Context) {
	if _, ok := extractUserID(c); !ok {
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "q query parameter is required")
		return
	}

	comparison, err := h.comparer.Compare(c.Request.Context(), query)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, comparison)
}
