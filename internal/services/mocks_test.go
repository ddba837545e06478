package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nooryx-gateway/internal/forms"
	"nooryx-gateway/internal/models"
)

// mockInventoryAPI mock de apiclient.InventoryAPI para tests de services
type mockInventoryAPI struct {
	mock.Mock
}

func (m *mockInventoryAPI) GetInventorySummary(ctx context.Context) (*models.InventorySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventorySummary), args.Error(1)
}

func (m *mockInventoryAPI) GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardMetrics), args.Error(1)
}

func (m *mockInventoryAPI) GetTopMovers(ctx context.Context, limit int) ([]models.MoverRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MoverRow), args.Error(1)
}

func (m *mockInventoryAPI) GetInactiveSKUs(ctx context.Context, limit int) ([]models.MoverRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MoverRow), args.Error(1)
}

func (m *mockInventoryAPI) GetInventoryTrend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrendPoint), args.Error(1)
}

func (m *mockInventoryAPI) GetCOGS(ctx context.Context, period string) (*models.COGSReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.COGSReport), args.Error(1)
}

func (m *mockInventoryAPI) GetCOGSTrend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrendPoint), args.Error(1)
}

func (m *mockInventoryAPI) ListValuation(ctx context.Context, page, pageSize int) (*models.ValuationPage, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValuationPage), args.Error(1)
}

func (m *mockInventoryAPI) ListSKUs(ctx context.Context, page, pageSize int) (*models.SKUPage, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SKUPage), args.Error(1)
}

func (m *mockInventoryAPI) ListTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionPage), args.Error(1)
}

func (m *mockInventoryAPI) Search(ctx context.Context, query, kind string) ([]models.SearchResult, error) {
	args := m.Called(ctx, query, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchResult), args.Error(1)
}

func (m *mockInventoryAPI) PostTransaction(ctx context.Context, payload forms.Values) (*models.TransactionResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionResult), args.Error(1)
}

func (m *mockInventoryAPI) UpdateSKU(ctx context.Context, skuCode string, update models.SKUUpdate) error {
	args := m.Called(ctx, skuCode, update)
	return args.Error(0)
}
