package middleware

import (
	"context"
	"net/http"
	"time"

	"nooryx-gateway/internal/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpstreamPinger verifica que el API de inventario responda
type UpstreamPinger func(ctx context.Context) error

type HealthChecker struct {
	redisDB      *database.RedisDB
	pingUpstream UpstreamPinger
	logger       *zap.Logger
}

// NewHealthChecker crea el checker. redisDB puede ser nil cuando se
// corre sin Redis; en ese caso solo se reporta el upstream.
func NewHealthChecker(redisDB *database.RedisDB, pingUpstream UpstreamPinger, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		redisDB:      redisDB,
		pingUpstream: pingUpstream,
		logger:       logger,
	}
}

func (h *HealthChecker) HealthCheck(c *gin.Context) {
	status := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  make(map[string]interface{}),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Verificar el API de inventario
	upstreamStatus := "healthy"
	if err := h.pingUpstream(ctx); err != nil {
		upstreamStatus = "unhealthy"
		status["status"] = "unhealthy"
		h.logger.Error("Inventory API health check failed", zap.Error(err))
	}
	status["services"].(map[string]interface{})["inventory_api"] = gin.H{
		"status": upstreamStatus,
	}

	// Verificar Redis. Sin Redis el gateway sigue operando, degradado.
	if h.redisDB != nil {
		redisStatus := "healthy"
		if err := h.redisDB.Ping(ctx); err != nil {
			redisStatus = "unhealthy"
			if status["status"] == "healthy" {
				status["status"] = "degraded"
			}
			h.logger.Error("Redis health check failed", zap.Error(err))
		}

		redisEntry := gin.H{"status": redisStatus}
		if stats, err := h.redisDB.GetStats(ctx); err != nil {
			h.logger.Error("Failed to get Redis stats", zap.Error(err))
		} else {
			redisEntry["stats"] = stats
		}

		status["services"].(map[string]interface{})["redis"] = redisEntry
	}

	httpStatus := http.StatusOK
	if status["status"] == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, status)
}
