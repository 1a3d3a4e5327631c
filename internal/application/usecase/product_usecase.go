package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// ProductUseCase casos de uso CRUD para productos y su lista de materiales (BOM).
// Las respuestas llevan las unidades vendibles calculadas con el stock actual de materiales.
type ProductUseCase struct {
	products  repository.ProductRepository
	materials repository.MaterialRepository
	log       zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, materials repository.MaterialRepository, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{
		products:  products,
		materials: materials,
		log:       log.With().Str("component", "products").Logger(),
	}
}

// Create crea un producto. El SKU no puede coincidir con el de un material.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, domain.Validation("name y sku son requeridos")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.Validation("price no puede ser negativo")
	}
	if err := uc.ensureSKUFree(ctx, sku); err != nil {
		return nil, err
	}
	bom, err := uc.validateBOM(ctx, in.BOM)
	if err != nil {
		return nil, err
	}
	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Variant:   trimmedOrNil(in.Variant),
		SKU:       sku,
		Price:     in.Price,
		BOM:       bom,
		CreatedAt: time.Now(),
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("sku", p.SKU).Int("bom_lines", len(bom)).Msg("producto creado")
	return uc.annotateOne(ctx, p)
}

// GetByID obtiene un producto con sus unidades vendibles.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.annotateOne(ctx, p)
}

// Update actualiza un producto. BOM nil deja la lista como está; BOM vacía la elimina.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Validation("name no puede quedar vacío")
		}
		p.Name = name
	}
	if in.Variant != nil {
		p.Variant = trimmedOrNil(in.Variant)
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.Validation("sku no puede quedar vacío")
		}
		if sku != p.SKU {
			if err := uc.ensureSKUFree(ctx, sku); err != nil {
				return nil, err
			}
		}
		p.SKU = sku
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Validation("price no puede ser negativo")
		}
		p.Price = in.Price
	}
	if in.BOM != nil {
		bom, err := uc.validateBOM(ctx, *in.BOM)
		if err != nil {
			return nil, err
		}
		p.BOM = bom
	}
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.annotateOne(ctx, p)
}

// List lista productos (archived nil = todos) con unidades vendibles.
func (uc *ProductUseCase) List(ctx context.Context, archived *bool) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(ctx, repository.ProductFilter{Archived: archived})
	if err != nil {
		return nil, err
	}
	onHand, err := uc.onHandIndex(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, onHand))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// SetArchived archiva o restaura un producto. Los productos archivados no se resuelven al importar órdenes.
func (uc *ProductUseCase) SetArchived(ctx context.Context, id string, archived bool) (*dto.ProductResponse, error) {
	p, err := uc.products.SetArchived(ctx, id, archived)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.annotateOne(ctx, p)
}

// validateBOM exige qty > 0, material existente y a lo sumo una línea por material.
func (uc *ProductUseCase) validateBOM(ctx context.Context, lines []dto.BOMLineDTO) ([]entity.BOMLine, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(lines))
	bom := make([]entity.BOMLine, 0, len(lines))
	for i, l := range lines {
		id := strings.TrimSpace(l.MaterialID)
		if id == "" {
			return nil, domain.Validation("bom[%d]: material_id es requerido", i)
		}
		if l.Qty <= 0 {
			return nil, domain.Validation("bom[%d]: qty debe ser mayor a 0", i)
		}
		if seen[id] {
			return nil, domain.Validation("bom[%d]: material %q repetido", i, id)
		}
		seen[id] = true
		m, err := uc.materials.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.Validation("bom[%d]: material %q no existe", i, id)
		}
		bom = append(bom, entity.BOMLine{MaterialID: id, Qty: l.Qty})
	}
	return bom, nil
}

func (uc *ProductUseCase) ensureSKUFree(ctx context.Context, sku string) error {
	if m, err := uc.materials.GetBySKU(ctx, sku); err != nil {
		return err
	} else if m != nil {
		return fmt.Errorf("%w: SKU %q pertenece a un material", domain.ErrDuplicate, sku)
	}
	if p, err := uc.products.GetBySKU(ctx, sku); err != nil {
		return err
	} else if p != nil {
		return fmt.Errorf("%w: SKU %q ya existe", domain.ErrDuplicate, sku)
	}
	return nil
}

// onHandIndex incluye materiales archivados: su stock sigue existiendo físicamente.
func (uc *ProductUseCase) onHandIndex(ctx context.Context) (map[string]int, error) {
	materials, err := uc.materials.List(ctx, repository.MaterialFilter{})
	if err != nil {
		return nil, err
	}
	return inventory.OnHandIndex(materials), nil
}

func (uc *ProductUseCase) annotateOne(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	onHand, err := uc.onHandIndex(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, onHand), nil
}

func toProductResponse(p *entity.Product, onHand map[string]int) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Variant:   p.Variant,
		SKU:       p.SKU,
		Price:     p.Price,
		BOM:       make([]dto.BOMLineDTO, 0, len(p.BOM)),
		Archived:  p.Archived,
		CreatedAt: p.CreatedAt,
	}
	for _, l := range p.BOM {
		out.BOM = append(out.BOM, dto.BOMLineDTO{MaterialID: l.MaterialID, Qty: l.Qty})
	}
	if qty, ok := inventory.CalculateSellable(p.BOM, onHand); ok {
		out.Sellable = &qty
	}
	return out
}
