package models

// InventorySummary es el snapshot de salud de inventario que devuelve el
// backend para el dashboard. Se produce fresco en cada fetch, nunca se muta.
type InventorySummary struct {
	OutOfStock          int      `json:"out_of_stock"`
	LowStock            int      `json:"low_stock"`
	FastMoverOutOfStock []string `json:"fast_mover_out_of_stock_sku"`
	FastMoverLowStock   []string `json:"fast_mover_low_stock_sku"`
	InactiveInStock     []string `json:"inactive_sku_in_stock"`
	EmptyInventory      bool     `json:"empty_inventory"`
}

// DashboardMetrics métricas agregadas del dashboard
type DashboardMetrics struct {
	TotalSKUs       int     `json:"total_skus"`
	TotalUnits      int     `json:"total_units"`
	TotalValue      float64 `json:"total_value"`
	LowStockCount   int     `json:"low_stock_count"`
	OutOfStockCount int     `json:"out_of_stock_count"`
}

// MoverRow una fila de top movers / inactivos
type MoverRow struct {
	SKUCode   string `json:"sku_code"`
	SKUName   string `json:"sku_name"`
	UnitsSold int    `json:"units_sold"`
	OnHand    int    `json:"on_hand"`
}

// TrendPoint un punto de la serie de tendencia de inventario
type TrendPoint struct {
	Date  string  `json:"date"`
	Units int     `json:"units"`
	Value float64 `json:"value"`
}

// COGSReport reporte de costo de ventas para un periodo
type COGSReport struct {
	Period      string  `json:"period"`
	COGS        float64 `json:"cogs"`
	Revenue     float64 `json:"revenue"`
	GrossMargin float64 `json:"gross_margin"`
}
