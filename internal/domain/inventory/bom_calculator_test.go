package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/inventory"
)

func TestCalculateSellable_BOMVaciaEsIndefinido(t *testing.T) {
	qty, ok := inventory.CalculateSellable(nil, map[string]int{"m1": 10})
	assert.False(t, ok, "BOM nil debe quedar indefinido")
	assert.Equal(t, 0, qty)

	_, ok = inventory.CalculateSellable([]entity.BOMLine{}, map[string]int{"m1": 10})
	assert.False(t, ok, "BOM vacía debe quedar indefinido, no cero")
}

func TestCalculateSellable_MinimoEntreLineas(t *testing.T) {
	bom := []entity.BOMLine{{MaterialID: "m1", Qty: 2}, {MaterialID: "m2", Qty: 5}}
	qty, ok := inventory.CalculateSellable(bom, map[string]int{"m1": 10, "m2": 12})
	assert.True(t, ok)
	assert.Equal(t, 2, qty, "min(10/2, 12/5) = min(5, 2)")
}

func TestCalculateSellable_DivisionEntera(t *testing.T) {
	qty, ok := inventory.CalculateSellable([]entity.BOMLine{{MaterialID: "x", Qty: 3}}, map[string]int{"x": 10})
	assert.True(t, ok)
	assert.Equal(t, 3, qty, "floor(10/3)")
}

func TestCalculateSellable_MaterialFaltanteEsQuiebre(t *testing.T) {
	bom := []entity.BOMLine{{MaterialID: "m1", Qty: 1}, {MaterialID: "borrado", Qty: 1}}
	qty, ok := inventory.CalculateSellable(bom, map[string]int{"m1": 50})
	assert.True(t, ok)
	assert.Equal(t, 0, qty)
}

func TestCalculateSellable_StockInsuficiente(t *testing.T) {
	qty, ok := inventory.CalculateSellable([]entity.BOMLine{{MaterialID: "m1", Qty: 4}}, map[string]int{"m1": 3})
	assert.True(t, ok)
	assert.Equal(t, 0, qty)
}

func TestOnHandIndex(t *testing.T) {
	idx := inventory.OnHandIndex([]*entity.Material{
		{ID: "a", OnHand: 7},
		nil,
		{ID: "b", OnHand: 0},
	})
	assert.Equal(t, map[string]int{"a": 7, "b": 0}, idx)
}
