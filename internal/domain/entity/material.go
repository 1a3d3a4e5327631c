package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima con stock propio (bodega única).
type Material struct {
	ID           string
	Name         string
	Variant      *string
	SKU          string
	OnHand       int // nunca negativo
	ReorderPoint int
	UnitCost     *decimal.Decimal
	Archived     bool
	CreatedAt    time.Time
}
