package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nooryx-gateway/internal/apiclient"
	"nooryx-gateway/internal/cache"
	"nooryx-gateway/internal/config"
	"nooryx-gateway/internal/database"
	"nooryx-gateway/internal/forms"
	"nooryx-gateway/internal/handlers"
	"nooryx-gateway/internal/middleware"
	"nooryx-gateway/internal/prefs"
	"nooryx-gateway/internal/routes"
	"nooryx-gateway/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	// Configuración
	cfg, err := config.Load()
	if err != nil {
		panic("Error cargando configuración: " + err.Error())
	}

	// Logger estructurado
	logger := buildLogger(cfg.Logging.Level, cfg.Server.GinMode)
	defer logger.Sync()

	logger.Info("Iniciando Nooryx Inventory Gateway",
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.String("gin_mode", cfg.Server.GinMode))

	// Redis es opcional: sin él, el caché opera solo en L1 y las
	// preferencias viven en memoria
	var redisDB *database.RedisDB
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisDB, err = database.NewRedisDB(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("Redis no disponible, operando en modo degradado", zap.Error(err))
		} else {
			redisClient = redisDB.Client
			defer redisDB.Close()
		}
	}

	// Cliente del API de inventario
	api := apiclient.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, cfg.Upstream.MaxRetries, logger)

	// Caché de consultas multi-nivel
	queryCache := cache.NewQueryCache(redisClient, cfg.Cache.MaxL1Size, cfg.Cache.TTL, logger)

	// Preferencias de vista
	var prefsStore prefs.Store
	if redisClient != nil {
		prefsStore = prefs.NewRedisStore(redisClient, logger)
	} else {
		prefsStore = prefs.NewMemoryStore()
	}

	// Services
	dashboardService := services.NewDashboardService(api, queryCache, logger)
	transactionService := services.NewTransactionService(api, forms.NewEngine(), queryCache, logger)
	searchService := services.NewSearchService(api, queryCache, logger)
	statusService := services.NewStatusService(logger, environment(cfg.Server.GinMode), redisClient, queryCache)

	// Handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, prefsStore, logger)
	transactionHandler := handlers.NewTransactionHandler(transactionService, logger)
	searchHandler := handlers.NewSearchHandler(searchService, logger)
	prefsHandler := handlers.NewPrefsHandler(prefsStore, logger)
	statusHandler := handlers.NewStatusHandler(statusService, logger)
	healthChecker := middleware.NewHealthChecker(redisDB, api.Ping, logger)

	// Router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(statusHandler.RecordRequestMiddleware())

	routes.SetupRoutes(router, dashboardHandler, transactionHandler, searchHandler, prefsHandler, statusHandler, healthChecker)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Arrancar el servidor en background para poder escuchar señales
	go func() {
		middleware.ServerInfo(cfg.Server.Port, logger)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Error arrancando el servidor", zap.Error(err))
		}
	}()

	// Apagado ordenado
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Apagando el servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Error en el apagado del servidor", zap.Error(err))
	}

	logger.Info("Servidor detenido")
}

// buildLogger arma el logger según nivel y modo
func buildLogger(level, ginMode string) *zap.Logger {
	var cfg zap.Config
	if ginMode == "debug" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	if parsed, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = parsed
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("Error construyendo logger: " + err.Error())
	}
	return logger
}

func environment(ginMode string) string {
	if ginMode == "debug" {
		return "development"
	}
	return "production"
}
