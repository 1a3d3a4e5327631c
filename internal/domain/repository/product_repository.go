package repository

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// ProductFilter filtro de listado. Archived nil = todos.
type ProductFilter struct {
	Archived *bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create/Update devuelven domain.ErrDuplicate si el SKU ya existe.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// ListActiveBySKUs resuelve SKUs contra el catálogo no archivado. Mapa sku -> producto.
	ListActiveBySKUs(ctx context.Context, skus []string) (map[string]*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	SetArchived(ctx context.Context, id string, archived bool) (*entity.Product, error)
}
