package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMLine una línea de la lista de materiales: cuántas unidades de un material consume una unidad del producto.
type BOMLine struct {
	MaterialID string `json:"material_id"`
	Qty        int    `json:"qty"`
}

// Product representa un artículo vendible compuesto por materiales (BOM).
// La referencia a Material es débil: se resuelve al leer, vía un mapa por ID.
type Product struct {
	ID        string
	Name      string
	Variant   *string
	SKU       string // único entre productos (y por regla de negocio, también frente a materiales)
	Price     *decimal.Decimal
	BOM       []BOMLine // puede ser nil: el vendible queda indefinido, no en cero
	Archived  bool
	CreatedAt time.Time
}
