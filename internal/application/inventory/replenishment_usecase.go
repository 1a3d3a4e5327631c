package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentUseCase genera la lista de reposición de materiales.
type ReplenishmentUseCase struct {
	materials repository.MaterialRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(materials repository.MaterialRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{materials: materials}
}

// GenerateReplenishmentList devuelve los materiales activos bajo su punto de reorden con la cantidad
// sugerida para volver a 1.5x el punto de reorden, ordenados por déficit (mayor primero).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	active := false
	materials, err := uc.materials.List(ctx, repository.MaterialFilter{Archived: &active})
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, m := range materials {
		if !inventory.IsLowStock(m) {
			continue
		}
		qty := inventory.SuggestedOrderQty(m)
		s := dto.ReplenishmentSuggestionDTO{
			MaterialID:        m.ID,
			SKU:               m.SKU,
			MaterialName:      m.Name,
			CurrentStock:      m.OnHand,
			ReorderPoint:      m.ReorderPoint,
			SuggestedOrderQty: qty,
			UnitCost:          m.UnitCost,
		}
		if m.UnitCost != nil {
			cost := m.UnitCost.Mul(decimal.NewFromInt(int64(qty))).Round(2)
			s.EstimatedOrderCost = &cost
		}
		suggestions = append(suggestions, s)
	}

	// Mayor déficit absoluto primero; desempate por SKU para un orden estable.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.ReorderPoint - a.CurrentStock
		defB := b.ReorderPoint - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.SKU < b.SKU
	})

	// Prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
