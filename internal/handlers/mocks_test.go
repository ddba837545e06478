package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nooryx-gateway/internal/composer"
	"nooryx-gateway/internal/forms"
	"nooryx-gateway/internal/models"
	"nooryx-gateway/internal/services"
)

type mockDashboardService struct {
	mock.Mock
}

var _ services.DashboardService = (*mockDashboardService)(nil)

func (m *mockDashboardService) HealthMessage(ctx context.Context) (*composer.MessageResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*composer.MessageResult), args.Error(1)
}

func (m *mockDashboardService) Summary(ctx context.Context) (*models.InventorySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventorySummary), args.Error(1)
}

func (m *mockDashboardService) Metrics(ctx context.Context) (*models.DashboardMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardMetrics), args.Error(1)
}

func (m *mockDashboardService) TopMovers(ctx context.Context, limit int) ([]models.MoverRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MoverRow), args.Error(1)
}

func (m *mockDashboardService) InactiveSKUs(ctx context.Context, limit int) ([]models.MoverRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MoverRow), args.Error(1)
}

func (m *mockDashboardService) Trend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrendPoint), args.Error(1)
}

func (m *mockDashboardService) COGS(ctx context.Context, period string) (*models.COGSReport, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.COGSReport), args.Error(1)
}

func (m *mockDashboardService) COGSTrend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrendPoint), args.Error(1)
}

func (m *mockDashboardService) Valuation(ctx context.Context, page, pageSize int) (*models.ValuationPage, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValuationPage), args.Error(1)
}

func (m *mockDashboardService) SKUs(ctx context.Context, page, pageSize int) (*models.SKUPage, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SKUPage), args.Error(1)
}

func (m *mockDashboardService) Transactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionPage), args.Error(1)
}

type mockTransactionService struct {
	mock.Mock
}

var _ services.TransactionService = (*mockTransactionService)(nil)

func (m *mockTransactionService) Submit(ctx context.Context, action forms.Action, values forms.Values) (*services.SubmitResult, error) {
	args := m.Called(ctx, action, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmitResult), args.Error(1)
}

func (m *mockTransactionService) UpdateAlerts(ctx context.Context, skuCode string, update models.SKUUpdate) error {
	args := m.Called(ctx, skuCode, update)
	return args.Error(0)
}

type mockSearchService struct {
	mock.Mock
}

var _ services.SearchService = (*mockSearchService)(nil)

func (m *mockSearchService) Search(ctx context.Context, query, kind string) ([]models.SearchResult, error) {
	args := m.Called(ctx, query, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchResult), args.Error(1)
}
