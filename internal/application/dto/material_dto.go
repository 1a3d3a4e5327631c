package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Variant      *string          `json:"variant"`
	SKU          string           `json:"sku" validate:"required,min=1,max=100"`
	OnHand       int              `json:"on_hand" validate:"min=0"`
	ReorderPoint int              `json:"reorder_point" validate:"min=0"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
}

// UpdateMaterialRequest entrada para actualizar un material (el stock se cambia por el ledger).
type UpdateMaterialRequest struct {
	Name         *string          `json:"name"`
	Variant      *string          `json:"variant"`
	SKU          *string          `json:"sku"`
	ReorderPoint *int             `json:"reorder_point"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
}

// SetQuantityRequest body para PUT /api/materials/:id/quantity.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// AdjustQuantityRequest body para POST /api/materials/:id/adjust (delta atómico).
// UnitCost solo aplica a entradas (delta > 0) y recalcula el costo promedio.
type AdjustQuantityRequest struct {
	Delta    int              `json:"delta"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Variant      *string          `json:"variant"`
	SKU          string           `json:"sku"`
	OnHand       int              `json:"on_hand"`
	ReorderPoint int              `json:"reorder_point"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	LowStock     bool             `json:"low_stock"`
	Archived     bool             `json:"archived"`
	CreatedAt    time.Time        `json:"created_at"`
}

// MaterialListResponse lista de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Total int                `json:"total"`
}
