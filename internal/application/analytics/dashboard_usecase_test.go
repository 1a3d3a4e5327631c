package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fulfillment-api/internal/application/analytics"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/memory"
)

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	orders := memory.NewOrderRepository(s)
	materials := memory.NewMaterialRepository(s)
	products := memory.NewProductRepository(s)

	for _, m := range []entity.Material{
		{ID: "m1", Name: "Tela", SKU: "FAB-1", OnHand: 1, ReorderPoint: 5},
		{ID: "m2", Name: "Hilo", SKU: "THR-1", OnHand: 100, ReorderPoint: 5},
		{ID: "m3", Name: "Viejo", SKU: "OLD-1", OnHand: 0, ReorderPoint: 5, Archived: true},
	} {
		m := m
		require.NoError(t, materials.Create(ctx, &m))
	}
	for _, p := range []entity.Product{
		{ID: "p1", Name: "Camiseta", SKU: "TSHIRT", BOM: []entity.BOMLine{{MaterialID: "m1", Qty: 2}}},
		{ID: "p2", Name: "Pañuelo", SKU: "SCARF", BOM: []entity.BOMLine{{MaterialID: "m2", Qty: 2}}},
		{ID: "p3", Name: "Servicio", SKU: "SVC"},
	} {
		p := p
		require.NoError(t, products.Create(ctx, &p))
	}
	for i, st := range []entity.OrderStatus{entity.OrderStatusPending, entity.OrderStatusPending, entity.OrderStatusInProgress, entity.OrderStatusShipped} {
		require.NoError(t, orders.Create(ctx, &entity.Order{
			ID: string(rune('a' + i)), Channel: entity.ChannelManual, Status: st, CreatedAt: time.Now(),
		}))
	}

	uc := analytics.NewDashboardUseCase(orders, materials, products)
	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, out.OrdersByStatus["PENDING"])
	assert.Equal(t, 1, out.OrdersByStatus["IN_PROGRESS"])
	assert.Equal(t, 1, out.OrdersByStatus["SHIPPED"])
	assert.Equal(t, 0, out.OrdersByStatus["DELIVERED"])
	assert.Contains(t, out.OrdersByStatus, "CANCELLED")
	assert.Equal(t, 3, out.OpenOrders)
	assert.Equal(t, 2, out.Materials, "archivados excluidos")
	assert.Equal(t, 1, out.LowStockMaterials)
	assert.Equal(t, 3, out.Products)
	assert.Equal(t, 1, out.UnsellableProducts, "p1: floor(1/2) = 0; p3 sin BOM no cuenta")
}
