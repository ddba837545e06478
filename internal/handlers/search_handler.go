package handlers

import (
	"net/http"

	"nooryx-gateway/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler typeahead de SKUs y ubicaciones
type SearchHandler struct {
	searchService services.SearchService
	logger        *zap.Logger
}

// NewSearchHandler crea una nueva instancia del handler
func NewSearchHandler(searchService services.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search resuelve una búsqueda de typeahead. kind acota a "sku" o
// "location"; vacío busca en ambos.
func (h *SearchHandler) Search(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "search"))

	query := c.Query("q")
	kind := c.Query("kind")

	switch kind {
	case "", "sku", "location":
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Tipo de búsqueda inválido",
			"error":   "kind must be \"sku\" or \"location\"",
		})
		return
	}

	results, err := h.searchService.Search(c.Request.Context(), query, kind)
	if err != nil {
		logger.Error("Error en búsqueda", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error ejecutando búsqueda",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Búsqueda completada",
		"data": gin.H{
			"query":   query,
			"results": results,
			"total":   len(results),
		},
	})
}
