package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartpantry/internal/service"
)

// InsightsHandler handles nutrition insight endpoints.
type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// Daily handles GET /api/v1/insights/daily/:date
func (h *InsightsHandler) Daily(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_DATE", "date must be in YYYY-MM-DD format")
		return
	}

	insights, err := h.insightsService.Daily(c.Request.Context(), userID, date)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, insights)
}

// Today handles GET /api/v1/insights/today
func (h *InsightsHandler) Today(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	insights, err := h.insightsService.Daily(c.Request.Context(), userID, time.Now().Format("2006-01-02"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, insights)
}

// Weekly handles GET /api/v1/insights/weekly
func (h *InsightsHandler) Weekly(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	insights, err := h.insightsService.Weekly(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, insights)
}

// Analyze handles GET /api/v1/insights/analyze?period=7&start=&end=
func (h *InsightsHandler) Analyze(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "7")
	analysis, err := h.insightsService.Analyze(c.Request.Context(), userID, period, c.Query("start"), c.Query("end"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analysis)
}
