package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	appinv "github.com/jhoicas/Fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

// MaterialUseCase casos de uso CRUD para materiales. La cantidad en mano se cambia por el ledger.
type MaterialUseCase struct {
	materials repository.MaterialRepository
	products  repository.ProductRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(materials repository.MaterialRepository, products repository.ProductRepository) *MaterialUseCase {
	return &MaterialUseCase{materials: materials, products: products}
}

// Create crea un material. El SKU no puede estar en uso por otro material ni por un producto.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, domain.Validation("name y sku son requeridos")
	}
	if in.OnHand < 0 || in.ReorderPoint < 0 {
		return nil, domain.Validation("on_hand y reorder_point no pueden ser negativos")
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.Validation("unit_cost no puede ser negativo")
	}
	if err := uc.ensureSKUFree(ctx, sku); err != nil {
		return nil, err
	}
	m := &entity.Material{
		ID:           uuid.New().String(),
		Name:         name,
		Variant:      trimmedOrNil(in.Variant),
		SKU:          sku,
		OnHand:       in.OnHand,
		ReorderPoint: in.ReorderPoint,
		UnitCost:     in.UnitCost,
		CreatedAt:    time.Now(),
	}
	if err := uc.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	return appinv.ToMaterialResponse(m), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return appinv.ToMaterialResponse(m), nil
}

// Update actualiza los datos descriptivos del material. No toca la cantidad en mano.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Validation("name no puede quedar vacío")
		}
		m.Name = name
	}
	if in.Variant != nil {
		m.Variant = trimmedOrNil(in.Variant)
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.Validation("sku no puede quedar vacío")
		}
		if sku != m.SKU {
			if err := uc.ensureSKUFree(ctx, sku); err != nil {
				return nil, err
			}
		}
		m.SKU = sku
	}
	if in.ReorderPoint != nil {
		if *in.ReorderPoint < 0 {
			return nil, domain.Validation("reorder_point no puede ser negativo")
		}
		m.ReorderPoint = *in.ReorderPoint
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.Validation("unit_cost no puede ser negativo")
		}
		m.UnitCost = in.UnitCost
	}
	if err := uc.materials.Update(ctx, m); err != nil {
		return nil, err
	}
	return appinv.ToMaterialResponse(m), nil
}

// List lista materiales. archived nil = todos.
func (uc *MaterialUseCase) List(ctx context.Context, archived *bool) (*dto.MaterialListResponse, error) {
	list, err := uc.materials.List(ctx, repository.MaterialFilter{Archived: archived})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *appinv.ToMaterialResponse(m))
	}
	return &dto.MaterialListResponse{Items: items, Total: len(items)}, nil
}

// SetArchived archiva o restaura un material.
func (uc *MaterialUseCase) SetArchived(ctx context.Context, id string, archived bool) (*dto.MaterialResponse, error) {
	m, err := uc.materials.SetArchived(ctx, id, archived)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return appinv.ToMaterialResponse(m), nil
}

func (uc *MaterialUseCase) ensureSKUFree(ctx context.Context, sku string) error {
	if p, err := uc.products.GetBySKU(ctx, sku); err != nil {
		return err
	} else if p != nil {
		return fmt.Errorf("%w: SKU %q pertenece a un producto", domain.ErrDuplicate, sku)
	}
	if m, err := uc.materials.GetBySKU(ctx, sku); err != nil {
		return err
	} else if m != nil {
		return fmt.Errorf("%w: SKU %q ya existe", domain.ErrDuplicate, sku)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
