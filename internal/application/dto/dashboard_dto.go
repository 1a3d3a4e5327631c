package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	OrdersByStatus     map[string]int `json:"orders_by_status"`
	OpenOrders         int            `json:"open_orders"` // PENDING + IN_PROGRESS
	Materials          int            `json:"materials"`
	LowStockMaterials  int            `json:"low_stock_materials"`
	Products           int            `json:"products"`
	UnsellableProducts int            `json:"unsellable_products"` // BOM definida con vendible 0
}
