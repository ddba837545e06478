package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nooryx-gateway/internal/composer"
	"nooryx-gateway/internal/models"
	"nooryx-gateway/internal/prefs"
)

func setupDashboardRouter(svc *mockDashboardService, store prefs.Store) *gin.Engine {
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	h := NewDashboardHandler(svc, store, zap.NewNop())
	r := gin.New()
	r.GET("/dashboard/message", h.GetHealthMessage)
	r.GET("/dashboard/summary", h.GetSummary)
	r.GET("/dashboard/metrics", h.GetMetrics)
	r.GET("/dashboard/trend", h.GetTrend)
	r.GET("/dashboard/movers/top", h.GetTopMovers)
	r.GET("/reports/cogs", h.GetCOGS)
	r.GET("/inventory/valuation", h.GetValuation)
	r.GET("/transactions", h.GetTransactions)
	return r
}

func TestGetHealthMessage(t *testing.T) {
	svc := new(mockDashboardService)
	result := composer.Compose(models.InventorySummary{OutOfStock: 1, FastMoverOutOfStock: []string{"KB-01"}})
	svc.On("HealthMessage", mock.Anything).Return(&result, nil)

	r := setupDashboardRouter(svc, nil)

	w, envelope := doJSON(t, r, http.MethodGet, "/dashboard/message", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]any)
	primary := data["primary"].([]any)
	assert.NotEmpty(t, primary)
	svc.AssertExpectations(t)
}

func TestGetHealthMessageUpstreamFailure(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("HealthMessage", mock.Anything).Return(nil, errors.New("connection refused"))

	r := setupDashboardRouter(svc, nil)

	w, envelope := doJSON(t, r, http.MethodGet, "/dashboard/message", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestGetTrendPersistsPeriodPreference(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("Trend", mock.Anything, "90d").Return([]models.TrendPoint{}, nil)

	store := prefs.NewMemoryStore()
	r := setupDashboardRouter(svc, store)

	w, _ := doJSON(t, r, http.MethodGet, "/dashboard/trend?period=90d", nil)
	require.Equal(t, http.StatusOK, w.Code)

	saved, ok := store.Get(context.Background(), prefs.KeyDashboardTrendPeriod)
	require.True(t, ok)
	assert.Equal(t, "90d", saved)
}

func TestGetTrendUsesSavedPreference(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("Trend", mock.Anything, "7d").Return([]models.TrendPoint{}, nil)

	store := prefs.NewMemoryStore()
	store.Set(context.Background(), prefs.KeyDashboardTrendPeriod, "7d")

	r := setupDashboardRouter(svc, store)

	w, envelope := doJSON(t, r, http.MethodGet, "/dashboard/trend", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "7d", data["period"])
	svc.AssertExpectations(t)
}

func TestGetTrendDefaultPeriod(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("Trend", mock.Anything, "30d").Return([]models.TrendPoint{}, nil)

	r := setupDashboardRouter(svc, nil)

	w, _ := doJSON(t, r, http.MethodGet, "/dashboard/trend", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGetTopMoversLimit(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("TopMovers", mock.Anything, 5).Return([]models.MoverRow{
		{SKUCode: "KB-01", UnitsSold: 40},
	}, nil)

	r := setupDashboardRouter(svc, nil)

	w, envelope := doJSON(t, r, http.MethodGet, "/dashboard/movers/top?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"])
	svc.AssertExpectations(t)
}

func TestGetTransactionsForwardsFilter(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("Transactions", mock.Anything, models.TransactionFilter{
		SKUCode:  "KB-01",
		Action:   "ship",
		Page:     2,
		PageSize: 10,
	}).Return(&models.TransactionPage{Page: 2, PageSize: 10}, nil)

	r := setupDashboardRouter(svc, nil)

	w, _ := doJSON(t, r, http.MethodGet, "/transactions?sku_code=KB-01&action=ship&page=2&page_size=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGetValuationDefaultPagination(t *testing.T) {
	svc := new(mockDashboardService)
	svc.On("Valuation", mock.Anything, 1, 25).Return(&models.ValuationPage{}, nil)

	r := setupDashboardRouter(svc, nil)

	w, _ := doJSON(t, r, http.MethodGet, "/inventory/valuation", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
