package routes

import (
	"nooryx-gateway/internal/handlers"
	"nooryx-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(
	router *gin.Engine,
	dashboardHandler *handlers.DashboardHandler,
	transactionHandler *handlers.TransactionHandler,
	searchHandler *handlers.SearchHandler,
	prefsHandler *handlers.PrefsHandler,
	statusHandler *handlers.StatusHandler,
	healthChecker *middleware.HealthChecker,
) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/message", dashboardHandler.GetHealthMessage)
			dashboard.GET("/summary", dashboardHandler.GetSummary)
			dashboard.GET("/metrics", dashboardHandler.GetMetrics)
			dashboard.GET("/trend", dashboardHandler.GetTrend)
			dashboard.GET("/movers/top", dashboardHandler.GetTopMovers)
			dashboard.GET("/movers/inactive", dashboardHandler.GetInactiveSKUs)
			dashboard.GET("/live", dashboardHandler.LiveMessage)
		}

		// Reports routes
		reports := v1.Group("/reports")
		{
			reports.GET("/cogs", dashboardHandler.GetCOGS)
			reports.GET("/cogs/trend", dashboardHandler.GetCOGSTrend)
		}

		// Inventory listings
		inventory := v1.Group("/inventory")
		{
			inventory.GET("/valuation", dashboardHandler.GetValuation)
			inventory.GET("/skus", dashboardHandler.GetSKUs)
		}

		// Transaction forms y submit
		v1.GET("/forms", transactionHandler.ListForms)
		v1.GET("/forms/:action", transactionHandler.GetForm)

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", dashboardHandler.GetTransactions)
			transactions.POST("/:action", transactionHandler.Submit)
		}

		// Alertas de SKU
		v1.PATCH("/skus/:code/alerts", transactionHandler.UpdateAlerts)

		// Typeahead
		v1.GET("/search", searchHandler.Search)

		// Preferencias de vista
		preferences := v1.Group("/preferences")
		{
			preferences.GET("/:key", prefsHandler.Get)
			preferences.PUT("/:key", prefsHandler.Set)
		}

		// Status routes
		status := v1.Group("/status")
		{
			status.GET("", statusHandler.GetStatus)
			status.GET("/ws", statusHandler.WebSocketStatus)
		}
	}

	// Health check (mantener en raíz para compatibilidad)
	router.GET("/health", healthChecker.HealthCheck)

	// API info en raíz
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Nooryx Inventory Gateway",
			"version": "1.0.0",
			"status":  "running",
			"endpoints": gin.H{
				"health": "/health",
				"api":    "/api/v1",
				"dashboard": gin.H{
					"message": "GET /api/v1/dashboard/message",
					"summary": "GET /api/v1/dashboard/summary",
					"trend":   "GET /api/v1/dashboard/trend",
				},
				"forms": gin.H{
					"list":    "GET /api/v1/forms",
					"resolve": "GET /api/v1/forms/:action",
				},
				"transactions": gin.H{
					"list":   "GET /api/v1/transactions",
					"submit": "POST /api/v1/transactions/:action",
				},
				"search": "GET /api/v1/search",
				"status": "GET /api/v1/status",
			},
		})
	})
}
