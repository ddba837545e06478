package handlers

import (
	"context"
	"net/http"
	"time"

	"nooryx-gateway/internal/models"
	"nooryx-gateway/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StatusHandler estado operacional del gateway
type StatusHandler struct {
	statusService services.StatusService
	logger        *zap.Logger
}

// NewStatusHandler crea una nueva instancia del handler
func NewStatusHandler(statusService services.StatusService, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
		logger:        logger,
	}
}

// GetStatus devuelve el snapshot de estado completo
func (h *StatusHandler) GetStatus(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_status"))

	status := h.statusService.GetStatus(c.Request.Context())

	logger.Info("Estado obtenido",
		zap.Int("total_requests", status.Requests.TotalRequests),
		zap.String("redis_status", status.Redis.Status))

	c.JSON(http.StatusOK, status)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Permitir todas las conexiones para desarrollo
	},
}

// WebSocketStatus empuja el estado por WebSocket cada 10 segundos
func (h *StatusHandler) WebSocketStatus(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "websocket_status"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Error actualizando a WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	logger.Info("Conexión WebSocket establecida")

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			status := h.statusService.GetStatus(context.Background())

			if err := conn.WriteJSON(status); err != nil {
				logger.Error("Error enviando estado por WebSocket", zap.Error(err))
				return
			}

			logger.Debug("Estado enviado por WebSocket",
				zap.String("timestamp", status.Timestamp))

		case <-c.Request.Context().Done():
			logger.Info("Conexión WebSocket cerrada por contexto")
			return
		}
	}
}

// RecordRequestMiddleware registra cada request en el servicio de estado
func (h *StatusHandler) RecordRequestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if shouldSkipRecording(path) {
			return
		}

		h.statusService.RecordRequest(models.RequestData{
			Endpoint:   path,
			Method:     c.Request.Method,
			Duration:   time.Since(start),
			StatusCode: c.Writer.Status(),
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// shouldSkipRecording excluye los endpoints de estado del registro para
// no medirse a sí mismo
func shouldSkipRecording(path string) bool {
	excludedPaths := []string{
		"/api/v1/status",
		"/api/v1/status/ws",
		"/api/v1/dashboard/live",
		"/health",
		"/",
	}

	for _, excluded := range excludedPaths {
		if path == excluded {
			return true
		}
	}
	return false
}
