package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartpantry/internal/service"
)

// NutritionHandler handles food logging endpoints.
type NutritionHandler struct {
	nutritionService service.NutritionService
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(nutritionService service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

// Add handles POST /api/v1/nutrition
func (h *NutritionHandler) Add(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.AddNutritionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entry, err := h.nutritionService.Add(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, entry)
}

// List handles GET /api/v1/nutrition
func (h *NutritionHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	offset, limit := pagination(c)
	entries, total, err := h.nutritionService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/nutrition/:id
func (h *NutritionHandler) Update(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid nutrition entry ID")
		return
	}

	var input service.UpdateNutritionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entry, err := h.nutritionService.Update(c.Request.Context(), userID, entryID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// Delete handles DELETE /api/v1/nutrition/:id
func (h *NutritionHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid nutrition entry ID")
		return
	}

	if err := h.nutritionService.Delete(c.Request.Context(), userID, entryID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "nutrition entry deleted"})
}
