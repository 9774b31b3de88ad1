package handlers

import (
	"net/http"

	"amedick/services/intelligence"
	"amedick/utils"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	Service intelligence.AutocompleteService
}

func NewAIHandler(service intelligence.AutocompleteService) *AIHandler {
	return &AIHandler{Service: service}
}

// AutocompleteHandler handles POST /api/ai/autocomplete.
func (h *AIHandler) AutocompleteHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if !bindJSON(c, &req) {
		return
	}
	suggestion, err := h.Service.Suggest(c.Request.Context(), req.Text)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
