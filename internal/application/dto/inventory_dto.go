package dto

import "github.com/shopspring/decimal"

// ReplenishmentSuggestionDTO sugerencia de reposición para un material bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	MaterialID         string           `json:"material_id"`
	SKU                string           `json:"sku"`
	MaterialName       string           `json:"material_name"`
	CurrentStock       int              `json:"current_stock"`
	ReorderPoint       int              `json:"reorder_point"`
	SuggestedOrderQty  int              `json:"suggested_order_qty"`  // ceil(ReorderPoint*1.5) - CurrentStock
	UnitCost           *decimal.Decimal `json:"unit_cost"`            // nil si el material no tiene costo
	EstimatedOrderCost *decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int              `json:"priority"`             // 1 = más urgente
}
