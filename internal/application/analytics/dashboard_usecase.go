// Package analytics contiene los casos de uso de reportes operativos del fulfillment.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen operativo: órdenes por estado, stock bajo y productos sin vendibles.
//
// Solo lectura; delega todo en los repositorios.
type DashboardUseCase struct {
	orders    repository.OrderRepository
	materials repository.MaterialRepository
	products  repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	orders repository.OrderRepository,
	materials repository.MaterialRepository,
	products repository.ProductRepository,
) *DashboardUseCase {
	return &DashboardUseCase{orders: orders, materials: materials, products: products}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres consultas en paralelo:
//  1. CountByStatus        → OrdersByStatus + OpenOrders
//  2. materiales activos   → Materials + LowStockMaterials
//  3. productos activos    → Products + UnsellableProducts (requiere 2)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countsResult struct {
		counts map[entity.OrderStatus]int
		err    error
	}
	type materialsResult struct {
		list []*entity.Material
		err  error
	}
	type productsResult struct {
		list []*entity.Product
		err  error
	}

	countsCh := make(chan countsResult, 1)
	materialsCh := make(chan materialsResult, 1)
	productsCh := make(chan productsResult, 1)
	active := false

	go func() {
		counts, err := uc.orders.CountByStatus(ctx)
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		list, err := uc.materials.List(ctx, repository.MaterialFilter{Archived: &active})
		materialsCh <- materialsResult{list, err}
	}()
	go func() {
		list, err := uc.products.List(ctx, repository.ProductFilter{Archived: &active})
		productsCh <- productsResult{list, err}
	}()

	counts := <-countsCh
	materials := <-materialsCh
	products := <-productsCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes por estado: %w", counts.err)
	}
	if materials.err != nil {
		return nil, fmt.Errorf("dashboard: materiales: %w", materials.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}

	out := &dto.DashboardSummaryDTO{
		OrdersByStatus: make(map[string]int, len(entity.OrderStatuses)),
		Materials:      len(materials.list),
		Products:       len(products.list),
	}
	// todos los estados presentes, aunque estén en 0
	for _, st := range entity.OrderStatuses {
		out.OrdersByStatus[string(st)] = counts.counts[st]
	}
	out.OpenOrders = counts.counts[entity.OrderStatusPending] + counts.counts[entity.OrderStatusInProgress]

	for _, m := range materials.list {
		if inventory.IsLowStock(m) {
			out.LowStockMaterials++
		}
	}
	onHand := inventory.OnHandIndex(materials.list)
	for _, p := range products.list {
		if qty, ok := inventory.CalculateSellable(p.BOM, onHand); ok && qty == 0 {
			out.UnsellableProducts++
		}
	}
	return out, nil
}
