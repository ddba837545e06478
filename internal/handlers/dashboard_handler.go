package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"nooryx-gateway/internal/models"
	"nooryx-gateway/internal/prefs"
	"nooryx-gateway/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler maneja las lecturas agregadas del dashboard
type DashboardHandler struct {
	dashboardService services.DashboardService
	prefsStore       prefs.Store
	logger           *zap.Logger
}

// NewDashboardHandler crea una nueva instancia del handler
func NewDashboardHandler(dashboardService services.DashboardService, prefsStore prefs.Store, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		prefsStore:       prefsStore,
		logger:           logger,
	}
}

// GetHealthMessage devuelve el mensaje de salud de inventario compuesto
func (h *DashboardHandler) GetHealthMessage(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_health_message"))

	result, err := h.dashboardService.HealthMessage(c.Request.Context())
	if err != nil {
		logger.Error("Error componiendo mensaje de salud", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo estado del inventario",
			"error":   err.Error(),
		})
		return
	}

	logger.Info("Mensaje de salud compuesto",
		zap.Bool("can_expand", result.CanExpand))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Estado de inventario obtenido",
		"data":    result,
	})
}

// GetSummary devuelve el resumen crudo de salud de inventario
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_summary"))

	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		logger.Error("Error obteniendo resumen", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo resumen de inventario",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Resumen obtenido correctamente",
		"data":    summary,
	})
}

// GetMetrics devuelve las métricas generales del dashboard
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_dashboard_metrics"))

	metrics, err := h.dashboardService.Metrics(c.Request.Context())
	if err != nil {
		logger.Error("Error obteniendo métricas", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo métricas del dashboard",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Métricas obtenidas correctamente",
		"data":    metrics,
	})
}

// GetTopMovers devuelve los SKUs con más ventas
func (h *DashboardHandler) GetTopMovers(c *gin.Context) {
	h.moverList(c, "get_top_movers", h.dashboardService.TopMovers)
}

// GetInactiveSKUs devuelve SKUs inactivos con stock
func (h *DashboardHandler) GetInactiveSKUs(c *gin.Context) {
	h.moverList(c, "get_inactive_skus", h.dashboardService.InactiveSKUs)
}

func (h *DashboardHandler) moverList(c *gin.Context, name string, fetch func(ctx context.Context, limit int) ([]models.MoverRow, error)) {
	logger := h.logger.With(zap.String("handler", name))

	limit := 10
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil && parsed > 0 && parsed <= 100 {
		limit = parsed
	}

	rows, err := fetch(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Error obteniendo listado", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo listado de SKUs",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Listado obtenido correctamente",
		"data": gin.H{
			"rows":  rows,
			"total": len(rows),
		},
	})
}

// GetTrend devuelve la serie de tendencia de inventario. Si no viene
// período en la query usa la preferencia guardada; si viene, la
// persiste como nuevo default.
func (h *DashboardHandler) GetTrend(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_trend"))
	ctx := c.Request.Context()

	period := c.Query("period")
	if period == "" {
		if saved, ok := h.prefsStore.Get(ctx, prefs.KeyDashboardTrendPeriod); ok {
			period = saved
		} else {
			period = "30d"
		}
	} else {
		h.prefsStore.Set(ctx, prefs.KeyDashboardTrendPeriod, period)
	}

	points, err := h.dashboardService.Trend(ctx, period)
	if err != nil {
		logger.Error("Error obteniendo tendencia", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo tendencia de inventario",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Tendencia obtenida correctamente",
		"data": gin.H{
			"period": period,
			"points": points,
		},
	})
}

// GetCOGS devuelve el reporte de costo de ventas
func (h *DashboardHandler) GetCOGS(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_cogs"))
	ctx := c.Request.Context()

	period := c.Query("period")
	if period == "" {
		if saved, ok := h.prefsStore.Get(ctx, prefs.KeyCOGSPeriod); ok {
			period = saved
		} else {
			period = "monthly"
		}
	} else {
		h.prefsStore.Set(ctx, prefs.KeyCOGSPeriod, period)
	}

	report, err := h.dashboardService.COGS(ctx, period)
	if err != nil {
		logger.Error("Error obteniendo COGS", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo reporte COGS",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Reporte COGS obtenido",
		"data":    report,
	})
}

// GetCOGSTrend devuelve la serie de tendencia de COGS
func (h *DashboardHandler) GetCOGSTrend(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_cogs_trend"))
	ctx := c.Request.Context()

	period := c.Query("period")
	if period == "" {
		if saved, ok := h.prefsStore.Get(ctx, prefs.KeyCOGSTrendSettings); ok {
			period = saved
		} else {
			period = "monthly"
		}
	} else {
		h.prefsStore.Set(ctx, prefs.KeyCOGSTrendSettings, period)
	}

	points, err := h.dashboardService.COGSTrend(ctx, period)
	if err != nil {
		logger.Error("Error obteniendo tendencia COGS", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo tendencia COGS",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Tendencia COGS obtenida",
		"data": gin.H{
			"period": period,
			"points": points,
		},
	})
}

// GetValuation devuelve el listado paginado de valuación
func (h *DashboardHandler) GetValuation(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_valuation"))

	page, pageSize := pagination(c)

	result, err := h.dashboardService.Valuation(c.Request.Context(), page, pageSize)
	if err != nil {
		logger.Error("Error obteniendo valuación", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo valuación de inventario",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Valuación obtenida correctamente",
		"data":    result,
	})
}

// GetSKUs devuelve el listado paginado de SKUs
func (h *DashboardHandler) GetSKUs(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_skus"))

	page, pageSize := pagination(c)

	result, err := h.dashboardService.SKUs(c.Request.Context(), page, pageSize)
	if err != nil {
		logger.Error("Error obteniendo SKUs", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo listado de SKUs",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ SKUs obtenidos correctamente",
		"data":    result,
	})
}

// GetTransactions devuelve el audit trail paginado
func (h *DashboardHandler) GetTransactions(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_transactions"))

	page, pageSize := pagination(c)
	filter := models.TransactionFilter{
		SKUCode:  c.Query("sku_code"),
		Location: c.Query("location"),
		Action:   c.Query("action"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.dashboardService.Transactions(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Error obteniendo transacciones", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "❌ Error obteniendo transacciones",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Transacciones obtenidas correctamente",
		"data":    result,
	})
}

// LiveMessage empuja el mensaje de salud de inventario por WebSocket
// cada 10 segundos para el feed en vivo del dashboard
func (h *DashboardHandler) LiveMessage(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "live_message"))

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

	push := func() bool {
		result, err := h.dashboardService.HealthMessage(context.Background())
		if err != nil {
			logger.Warn("Error componiendo mensaje para el feed", zap.Error(err))
			return true
		}
		if err := conn.WriteJSON(result); err != nil {
			logger.Error("Error enviando mensaje por WebSocket", zap.Error(err))
			return false
		}
		return true
	}

	// Primer mensaje inmediato para que el cliente no espere un tick
	if !push() {
		return
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !push() {
				return
			}
		case <-c.Request.Context().Done():
			logger.Info("Conexión WebSocket cerrada por contexto")
			return
		}
	}
}

// pagination parsea page/page_size con defaults razonables
func pagination(c *gin.Context) (int, int) {
	page := 1
	if parsed, err := strconv.Atoi(c.Query("page")); err == nil && parsed > 0 {
		page = parsed
	}
	pageSize := 25
	if parsed, err := strconv.Atoi(c.Query("page_size")); err == nil && parsed > 0 && parsed <= 200 {
		pageSize = parsed
	}
	return page, pageSize
}
