package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo adaptador en memoria de MaterialRepository.
type MaterialRepo struct {
	s *Store
}

// NewMaterialRepository construye el adaptador sobre el store.
func NewMaterialRepository(s *Store) *MaterialRepo {
	return &MaterialRepo{s: s}
}

func (r *MaterialRepo) List(_ context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Material, 0, len(r.s.materials))
	for _, m := range r.s.materials {
		if filter.Archived != nil && m.Archived != *filter.Archived {
			continue
		}
		m := m
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MaterialRepo) GetBySKU(_ context.Context, sku string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.materials {
		if m.SKU == sku {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MaterialRepo) Create(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(m.SKU, m.ID) {
		return domain.ErrDuplicate
	}
	r.s.materials[m.ID] = *m
	return nil
}

func (r *MaterialRepo) Update(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.materials[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.skuTaken(m.SKU, m.ID) {
		return domain.ErrDuplicate
	}
	// el stock no se toca por Update
	next := *m
	next.OnHand = cur.OnHand
	r.s.materials[m.ID] = next
	return nil
}

func (r *MaterialRepo) SetQuantity(_ context.Context, id string, qty int) (*entity.Material, error) {
	if qty < 0 {
		return nil, domain.Validation("cantidad negativa")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	m.OnHand = qty
	r.s.materials[id] = m
	return &m, nil
}

func (r *MaterialRepo) AddQuantity(_ context.Context, id string, delta int, unitCost *decimal.Decimal) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	if unitCost != nil && delta > 0 {
		cost := inventory.CostCalculator(m.OnHand, m.UnitCost, delta, *unitCost)
		m.UnitCost = &cost
	}
	m.OnHand = inventory.ClampQuantity(m.OnHand + delta)
	r.s.materials[id] = m
	return &m, nil
}

func (r *MaterialRepo) SetArchived(_ context.Context, id string, archived bool) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	m.Archived = archived
	r.s.materials[id] = m
	return &m, nil
}

func (r *MaterialRepo) skuTaken(sku, exceptID string) bool {
	for id, m := range r.s.materials {
		if m.SKU == sku && id != exceptID {
			return true
		}
	}
	return false
}
