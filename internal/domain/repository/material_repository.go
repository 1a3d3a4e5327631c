package repository

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaterialFilter filtro de listado. Archived nil = todos.
type MaterialFilter struct {
	Archived *bool
}

// MaterialRepository define el puerto de persistencia para Material (DIP).
// Create/Update devuelven domain.ErrDuplicate si el SKU ya existe.
type MaterialRepository interface {
	List(ctx context.Context, filter MaterialFilter) ([]*entity.Material, error)
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Material, error)
	Create(ctx context.Context, m *entity.Material) error
	Update(ctx context.Context, m *entity.Material) error
	// SetQuantity escribe un valor absoluto (último escritor gana). Devuelve la fila tal como quedó.
	SetQuantity(ctx context.Context, id string, qty int) (*entity.Material, error)
	// AddQuantity aplica un delta de forma atómica, recortando en 0. Si unitCost no es nil y delta > 0,
	// recalcula el costo promedio ponderado en la misma escritura.
	AddQuantity(ctx context.Context, id string, delta int, unitCost *decimal.Decimal) (*entity.Material, error)
	SetArchived(ctx context.Context, id string, archived bool) (*entity.Material, error)
}
