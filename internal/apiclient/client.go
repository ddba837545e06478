// Package apiclient es la capa de acceso a datos del gateway: un cliente
// tipado del API remoto de inventario. El backend es dueño de toda la
// persistencia y de los invariantes de negocio; acá solo se habla HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"nooryx-gateway/internal/apierrors"
	"nooryx-gateway/internal/forms"
	"nooryx-gateway/internal/models"
)

// InventoryAPI define las operaciones contra el backend de inventario
type InventoryAPI interface {
	// Dashboard
	GetInventorySummary(ctx context.Context) (*models.InventorySummary, error)
	GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error)
	GetTopMovers(ctx context.Context, limit int) ([]models.MoverRow, error)
	GetInactiveSKUs(ctx context.Context, limit int) ([]models.MoverRow, error)
	GetInventoryTrend(ctx context.Context, period string) ([]models.TrendPoint, error)
	GetCOGS(ctx context.Context, period string) (*models.COGSReport, error)
	GetCOGSTrend(ctx context.Context, period string) ([]models.TrendPoint, error)

	// Listados
	ListValuation(ctx context.Context, page, pageSize int) (*models.ValuationPage, error)
	ListSKUs(ctx context.Context, page, pageSize int) (*models.SKUPage, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error)

	// Typeahead
	Search(ctx context.Context, query, kind string) ([]models.SearchResult, error)

	// Escrituras
	PostTransaction(ctx context.Context, payload forms.Values) (*models.TransactionResult, error)
	UpdateSKU(ctx context.Context, skuCode string, update models.SKUUpdate) error
}

// Client implementa InventoryAPI sobre net/http
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryWait  time.Duration
	logger     *zap.Logger
}

// New crea un cliente hacia el backend de inventario
func New(baseURL string, timeout time.Duration, maxRetries int, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		retryWait:  200 * time.Millisecond,
		logger:     logger,
	}
}

// getJSON GET con reintentos acotados. Solo los GET se reintentan: son
// idempotentes; las escrituras viajan una sola vez.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("Reintentando GET upstream",
				zap.String("path", path),
				zap.Int("attempt", attempt))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryWait * time.Duration(attempt)):
			}
		}

		err := c.do(ctx, http.MethodGet, path, query, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(err) {
			return err
		}
	}
	return lastErr
}

// Ping verifica que el upstream responda; usado por el health check
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// sendJSON escritura sin reintentos
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("upstream %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Upstream request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		return parseUpstreamError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding upstream response: %w", err)
	}
	return nil
}

// parseUpstreamError extrae el mensaje del body de error. El contrato upstream
// es prosa: {"message": "..."} o {"error": "..."}.
func parseUpstreamError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &apierrors.UpstreamStatusError{StatusCode: resp.StatusCode, Message: msg}
}

// retryable errores de red y 5xx se reintentan; los 4xx son definitivos
func retryable(err error) bool {
	var upstream *apierrors.UpstreamStatusError
	if errors.As(err, &upstream) {
		return upstream.StatusCode >= http.StatusInternalServerError
	}
	return true
}
