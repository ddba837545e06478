package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"nooryx-gateway/internal/models"
)

func (c *Client) GetInventorySummary(ctx context.Context) (*models.InventorySummary, error) {
	var out models.InventorySummary
	if err := c.getJSON(ctx, "/api/v1/dashboard/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	var out models.DashboardMetrics
	if err := c.getJSON(ctx, "/api/v1/dashboard/metrics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTopMovers(ctx context.Context, limit int) ([]models.MoverRow, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var out []models.MoverRow
	if err := c.getJSON(ctx, "/api/v1/dashboard/top-movers", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetInactiveSKUs(ctx context.Context, limit int) ([]models.MoverRow, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var out []models.MoverRow
	if err := c.getJSON(ctx, "/api/v1/dashboard/inactive", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetInventoryTrend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	q := url.Values{"period": {period}}
	var out []models.TrendPoint
	if err := c.getJSON(ctx, "/api/v1/dashboard/trend", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCOGS(ctx context.Context, period string) (*models.COGSReport, error) {
	q := url.Values{"period": {period}}
	var out models.COGSReport
	if err := c.getJSON(ctx, "/api/v1/reports/cogs", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCOGSTrend(ctx context.Context, period string) ([]models.TrendPoint, error) {
	q := url.Values{"period": {period}}
	var out []models.TrendPoint
	if err := c.getJSON(ctx, "/api/v1/reports/cogs-trend", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListValuation(ctx context.Context, page, pageSize int) (*models.ValuationPage, error) {
	q := pageQuery(page, pageSize)
	var out models.ValuationPage
	if err := c.getJSON(ctx, "/api/v1/inventory/valuation", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSKUs(ctx context.Context, page, pageSize int) (*models.SKUPage, error) {
	q := pageQuery(page, pageSize)
	var out models.SKUPage
	if err := c.getJSON(ctx, "/api/v1/inventory/skus", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error) {
	q := pageQuery(filter.Page, filter.PageSize)
	if filter.SKUCode != "" {
		q.Set("sku_code", filter.SKUCode)
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.Action != "" {
		q.Set("action", filter.Action)
	}

	var out models.TransactionPage
	if err := c.getJSON(ctx, "/api/v1/transactions", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Search(ctx context.Context, query, kind string) ([]models.SearchResult, error) {
	q := url.Values{"q": {query}}
	if kind != "" {
		q.Set("kind", kind)
	}
	var out []models.SearchResult
	if err := c.getJSON(ctx, "/api/v1/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func pageQuery(page, pageSize int) url.Values {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	return url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}
}
