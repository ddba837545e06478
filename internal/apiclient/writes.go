package apiclient

import (
	"context"
	"net/http"

	"nooryx-gateway/internal/forms"
	"nooryx-gateway/internal/models"
)

// PostTransaction registra una transacción por el endpoint genérico. El
// payload ya viene transformado por el form framework; acá no se toca.
func (c *Client) PostTransaction(ctx context.Context, payload forms.Values) (*models.TransactionResult, error) {
	var out models.TransactionResult
	if err := c.sendJSON(ctx, http.MethodPost, "/api/v1/transactions", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSKU edita los umbrales de alerta de un SKU
func (c *Client) UpdateSKU(ctx context.Context, skuCode string, update models.SKUUpdate) error {
	return c.sendJSON(ctx, http.MethodPatch, "/api/v1/skus/"+skuCode, update, nil)
}
