package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/event"
	"github.com/jhoicas/Fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerUseCase registra las cantidades en mano de los materiales.
// AdjustQuantity escribe un valor absoluto (último escritor gana); AdjustBy aplica un delta atómico
// en el borde de persistencia y es la primitiva a usar cuando hay escrituras concurrentes.
type LedgerUseCase struct {
	materials repository.MaterialRepository
	events    EventPublisher
	log       zerolog.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso. events puede ser nil.
func NewLedgerUseCase(materials repository.MaterialRepository, events EventPublisher, log zerolog.Logger) *LedgerUseCase {
	if events == nil {
		events = noopPublisher{}
	}
	return &LedgerUseCase{
		materials: materials,
		events:    events,
		log:       log.With().Str("component", "ledger").Logger(),
		now:       time.Now,
	}
}

// AdjustQuantity fija la cantidad en mano. Rechaza valores negativos antes de escribir.
// Devuelve exactamente lo que quedó persistido; si la escritura falla el valor anterior sigue vigente.
func (uc *LedgerUseCase) AdjustQuantity(ctx context.Context, materialID string, newQty int) (*dto.MaterialResponse, error) {
	if newQty < 0 {
		return nil, domain.Validation("la cantidad no puede ser negativa (%d)", newQty)
	}
	m, err := uc.materials.SetQuantity(ctx, materialID, newQty)
	if err != nil {
		uc.log.Error().Err(err).Str("material_id", materialID).Int("qty", newQty).Msg("fijar cantidad")
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	uc.quantityChanged(ctx, m)
	return ToMaterialResponse(m), nil
}

// AdjustBy suma delta (positivo o negativo) a la cantidad en mano, recortando en 0.
// unitCost solo aplica a entradas y recalcula el costo promedio ponderado.
func (uc *LedgerUseCase) AdjustBy(ctx context.Context, materialID string, delta int, unitCost *decimal.Decimal) (*dto.MaterialResponse, error) {
	if delta == 0 && unitCost == nil {
		return nil, domain.Validation("delta no puede ser 0")
	}
	if unitCost != nil {
		if delta <= 0 {
			return nil, domain.Validation("unit_cost solo aplica a entradas (delta > 0)")
		}
		if unitCost.IsNegative() {
			return nil, domain.Validation("unit_cost no puede ser negativo")
		}
	}
	m, err := uc.materials.AddQuantity(ctx, materialID, delta, unitCost)
	if err != nil {
		uc.log.Error().Err(err).Str("material_id", materialID).Int("delta", delta).Msg("ajustar cantidad")
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	uc.quantityChanged(ctx, m)
	return ToMaterialResponse(m), nil
}

// AdjustFromRequest adapta el body de POST /api/materials/:id/adjust.
func (uc *LedgerUseCase) AdjustFromRequest(ctx context.Context, materialID string, in dto.AdjustQuantityRequest) (*dto.MaterialResponse, error) {
	return uc.AdjustBy(ctx, materialID, in.Delta, in.UnitCost)
}

func (uc *LedgerUseCase) quantityChanged(ctx context.Context, m *entity.Material) {
	low := inventory.IsLowStock(m)
	ev := uc.log.Info()
	if low {
		ev = uc.log.Warn()
	}
	ev.Str("material_id", m.ID).Str("sku", m.SKU).Int("on_hand", m.OnHand).Bool("low_stock", low).Msg("cantidad actualizada")

	if err := uc.events.Publish(ctx, event.Event{
		Type:       event.TypeMaterialQuantityChanged,
		Key:        m.ID,
		OccurredAt: uc.now(),
		Payload: event.MaterialQuantityChangedPayload{
			MaterialID: m.ID, SKU: m.SKU, OnHand: m.OnHand, LowStock: low,
		},
	}); err != nil {
		uc.log.Warn().Err(err).Str("material_id", m.ID).Msg("publicar evento")
	}
}

// ToMaterialResponse mapea la entidad a la salida HTTP, marcando low_stock.
func ToMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		Variant:      m.Variant,
		SKU:          m.SKU,
		OnHand:       m.OnHand,
		ReorderPoint: m.ReorderPoint,
		UnitCost:     m.UnitCost,
		LowStock:     inventory.IsLowStock(m),
		Archived:     m.Archived,
		CreatedAt:    m.CreatedAt,
	}
}
