package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMLineDTO línea de la lista de materiales.
type BOMLineDTO struct {
	MaterialID string `json:"material_id"`
	Qty        int    `json:"qty"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name    string           `json:"name" validate:"required,min=1,max=200"`
	Variant *string          `json:"variant"`
	SKU     string           `json:"sku" validate:"required,min=1,max=100"`
	Price   *decimal.Decimal `json:"price"`
	BOM     []BOMLineDTO     `json:"bom"`
}

// UpdateProductRequest entrada para actualizar un producto. BOM nil = no tocar; BOM [] = vaciar.
type UpdateProductRequest struct {
	Name    *string          `json:"name"`
	Variant *string          `json:"variant"`
	SKU     *string          `json:"sku"`
	Price   *decimal.Decimal `json:"price"`
	BOM     *[]BOMLineDTO    `json:"bom"`
}

// ProductResponse salida de un producto. Sellable es null cuando la BOM está vacía, la UI muestra un guion.
type ProductResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Variant   *string          `json:"variant"`
	SKU       string           `json:"sku"`
	Price     *decimal.Decimal `json:"price"`
	BOM       []BOMLineDTO     `json:"bom"`
	Sellable  *int             `json:"sellable"`
	Archived  bool             `json:"archived"`
	CreatedAt time.Time        `json:"created_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
