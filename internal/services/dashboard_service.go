package services

import (
	"context"
	"fmt"
	"time"

	"nooryx-gateway/internal/apiclient"
	"nooryx-gateway/internal/cache"
	"nooryx-gateway/internal/composer"
	"nooryx-gateway/internal/models"

	"go.uber.org/zap"
)

// DashboardService define las lecturas agregadas del dashboard de inventario
type DashboardService interface {
	// Mensaje de salud compuesto a partir del resumen upstream
	HealthMessage(ctx context.Context) (*composer.MessageResult, error)

	// Lecturas directas
	Summary(ctx context.Context) (*models.InventorySummary, error)
	Metrics(ctx context.Context) (*models.DashboardMetrics, error)
	TopMovers(ctx context.Context, limit int) ([]models.MoverRow, error)
	InactiveSKUs(ctx context.Context, limit int) ([]models.MoverRow, error)
	Trend(ctx context.Context, period string) ([]models.TrendPoint, error)
	COGS(ctx context.Context, period string) (*models.COGSReport, error)
	COGSTrend(ctx context.Context, period string) ([]models.TrendPoint, error)

	// Listados paginados
	Valuation(ctx context.Context, page, pageSize int) (*models.ValuationPage, error)
	SKUs(ctx context.Context, page, pageSize int) (*models.SKUPage, error)
	Transactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error)
}

// dashboardService implementa DashboardService con caché multi-nivel
// delante del API de inventario
type dashboardService struct {
	api    apiclient.InventoryAPI
	cache  *cache.QueryCache
	logger *zap.Logger
}

// NewDashboardService crea una nueva instancia del servicio
func NewDashboardService(api apiclient.InventoryAPI, queryCache *cache.QueryCache, logger *zap.Logger) DashboardService {
	return &dashboardService{
		api:    api,
		cache:  queryCache,
		logger: logger,
	}
}

func (s *dashboardService) HealthMessage(ctx context.Context) (*composer.MessageResult, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	result := composer.Compose(*summary)
	return &result, nil
}

func (s *dashboardService) Summary(ctx context.Context) (*models.InventorySummary, error) {
	var summary models.InventorySummary
	key := "inventory:summary"
	if s.cache.Get(ctx, key, &summary) {
		return &summary, nil
	}

	out, err := s.api.GetInventorySummary(ctx)
	if err != nil {
		s.logger.Error("Error obteniendo resumen de inventario", zap.Error(err))
		return nil, fmt.Errorf("obteniendo resumen de inventario: %w", err)
	}

	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *dashboardService) Metrics(ctx context.Context) (*models.DashboardMetrics, error) {
	var metrics models.DashboardMetrics
	key := "inventory:metrics"
	if s.cache.Get(ctx, key, &metrics) {
		return &metrics, nil
	}

	out, err := s.api.GetDashboardMetrics(ctx)
	if err != nil {
		s.logger.Error("Error obteniendo métricas", zap.Error(err))
		return nil, fmt.Errorf("obteniendo métricas: %w", err)
	}

	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *dashboardService) TopMovers(ctx context.Context, limit int) ([]models.MoverRow, error) {
	var rows []models.MoverRow
	key := fmt.Sprintf("inventory:movers:top:%d", limit)
	if s.cache.Get(ctx, key, &rows) {
		return rows, nil
	}

	rows, err := s.api.GetTopMovers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("obteniendo top movers: %w", err)
	}

	s.cache.Set(ctx, key, rows)
	return rows, nil
}

func (s *dashboardService) InactiveSKUs(ctx context.Context, limit int) ([]models.MoverRow, error) {
	var rows []models.MoverRow
	key := fmt.Sprintf("inventory:movers:inactive:%d", limit)
	if s.cache.Get(ctx, key, &rows) {
		return rows, nil
	}

	rows, err := s.api.GetInactiveSKUs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("obteniendo SKUs inactivos: %w", err)
	}

	s.cache.Set(ctx, key, rows)
	return rows, nil
}

func (s *dashboardService) Trend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	var points []models.TrendPoint
	key := "inventory:trend:" + period
	if s.cache.Get(ctx, key, &points) {
		return points, nil
	}

	points, err := s.api.GetInventoryTrend(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("obteniendo tendencia de inventario: %w", err)
	}

	s.cache.Set(ctx, key, points)
	return points, nil
}

func (s *dashboardService) COGS(ctx context.Context, period string) (*models.COGSReport, error) {
	var report models.COGSReport
	key := "inventory:cogs:" + period
	if s.cache.Get(ctx, key, &report) {
		return &report, nil
	}

	out, err := s.api.GetCOGS(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("obteniendo reporte COGS: %w", err)
	}

	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *dashboardService) COGSTrend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	var points []models.TrendPoint
	key := "inventory:cogs-trend:" + period
	if s.cache.Get(ctx, key, &points) {
		return points, nil
	}

	points, err := s.api.GetCOGSTrend(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("obteniendo tendencia COGS: %w", err)
	}

	s.cache.Set(ctx, key, points)
	return points, nil
}

func (s *dashboardService) Valuation(ctx context.Context, page, pageSize int) (*models.ValuationPage, error) {
	var result models.ValuationPage
	key := fmt.Sprintf("inventory:valuation:p%d:s%d", page, pageSize)
	if s.cache.Get(ctx, key, &result) {
		return &result, nil
	}

	out, err := s.api.ListValuation(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("obteniendo valuación: %w", err)
	}

	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *dashboardService) SKUs(ctx context.Context, page, pageSize int) (*models.SKUPage, error) {
	var result models.SKUPage
	key := fmt.Sprintf("inventory:skus:p%d:s%d", page, pageSize)
	if s.cache.Get(ctx, key, &result) {
		return &result, nil
	}

	out, err := s.api.ListSKUs(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("obteniendo listado de SKUs: %w", err)
	}

	s.cache.Set(ctx, key, out)
	return out, nil
}

func (s *dashboardService) Transactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error) {
	var result models.TransactionPage
	key := fmt.Sprintf("transactions:list:%s", filter.CacheKey())
	if s.cache.Get(ctx, key, &result) {
		return &result, nil
	}

	out, err := s.api.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("obteniendo transacciones: %w", err)
	}

	s.cache.SetWithTTL(ctx, key, out, 30*time.Second)
	return out, nil
}
