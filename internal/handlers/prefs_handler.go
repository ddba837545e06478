package handlers

import (
	"net/http"

	"nooryx-gateway/internal/prefs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrefsHandler lectura y escritura de preferencias de vista
type PrefsHandler struct {
	store  prefs.Store
	logger *zap.Logger
}

// NewPrefsHandler crea una nueva instancia del handler
func NewPrefsHandler(store prefs.Store, logger *zap.Logger) *PrefsHandler {
	return &PrefsHandler{
		store:  store,
		logger: logger,
	}
}

// Get devuelve el valor guardado de una preferencia
func (h *PrefsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if !prefs.KnownKey(key) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "❌ Preferencia desconocida",
			"error":   "unknown preference key: " + key,
		})
		return
	}

	value, ok := h.store.Get(c.Request.Context(), key)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Preferencia obtenida",
		"data": gin.H{
			"key":   key,
			"value": value,
			"set":   ok,
		},
	})
}

// Set guarda el valor de una preferencia
func (h *PrefsHandler) Set(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "set_preference"))

	key := c.Param("key")
	if !prefs.KnownKey(key) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "❌ Preferencia desconocida",
			"error":   "unknown preference key: " + key,
		})
		return
	}

	var body struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.Error("Error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	h.store.Set(c.Request.Context(), key, body.Value)

	logger.Info("Preferencia guardada",
		zap.String("key", key),
		zap.String("value", body.Value))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Preferencia guardada",
		"data": gin.H{
			"key":   key,
			"value": body.Value,
		},
	})
}
