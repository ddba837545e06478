package models

import (
	"fmt"
	"time"
)

// ===== LISTADOS =====

// ValuationRow una fila del listado de valuación de inventario
type ValuationRow struct {
	SKUCode    string  `json:"sku_code"`
	SKUName    string  `json:"sku_name"`
	Location   string  `json:"location"`
	OnHand     int     `json:"on_hand"`
	Reserved   int     `json:"reserved"`
	Available  int     `json:"available"`
	UnitCost   float64 `json:"unit_cost"`
	TotalValue float64 `json:"total_value"`
}

// ValuationPage página del listado de valuación
type ValuationPage struct {
	Rows     []ValuationRow `json:"rows"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int            `json:"total"`
}

// SKURow una fila del listado de SKUs
type SKURow struct {
	SKUCode           string `json:"sku_code"`
	SKUName           string `json:"sku_name"`
	Barcode           string `json:"barcode,omitempty"`
	OnHand            int    `json:"on_hand"`
	Reserved          int    `json:"reserved"`
	ReorderPoint      int    `json:"reorder_point"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	AlertsEnabled     bool   `json:"alerts_enabled"`
	Active            bool   `json:"active"`
}

// SKUPage página del listado de SKUs
type SKUPage struct {
	Rows     []SKURow `json:"rows"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Total    int      `json:"total"`
}

// ===== AUDIT TRAIL =====

// Transaction una entrada del audit trail de transacciones
type Transaction struct {
	ID        string            `json:"id"`
	Action    string            `json:"action"`
	SKUCode   string            `json:"sku_code"`
	SKUName   string            `json:"sku_name,omitempty"`
	Location  string            `json:"location"`
	Qty       int               `json:"qty"`
	Metadata  map[string]string `json:"txn_metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// TransactionFilter filtros para el listado de transacciones
type TransactionFilter struct {
	SKUCode  string
	Location string
	Action   string
	Page     int
	PageSize int
}

// CacheKey sufijo de clave de caché determinístico para el filtro
func (f TransactionFilter) CacheKey() string {
	return fmt.Sprintf("%s:%s:%s:p%d:s%d", f.SKUCode, f.Location, f.Action, f.Page, f.PageSize)
}

// TransactionPage página del audit trail
type TransactionPage struct {
	Rows     []Transaction `json:"rows"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int           `json:"total"`
}

// TransactionResult respuesta del backend al registrar una transacción
type TransactionResult struct {
	SKUCode   string `json:"sku_code"`
	Location  string `json:"location"`
	Qty       int    `json:"qty"`
	OnHand    int    `json:"on_hand"`
	Reserved  int    `json:"reserved"`
	Timestamp string `json:"timestamp"`
}

// ===== BÚSQUEDA =====

// SearchResult un resultado del typeahead de SKU/ubicación
type SearchResult struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
	Kind string `json:"kind"` // "sku" | "location"
}

// ===== UPDATE SKU =====

// SKUUpdate actualización de umbrales de alerta de un SKU
type SKUUpdate struct {
	AlertsEnabled     *bool `json:"alerts_enabled,omitempty"`
	ReorderPoint      *int  `json:"reorder_point,omitempty"`
	LowStockThreshold *int  `json:"low_stock_threshold,omitempty"`
}
