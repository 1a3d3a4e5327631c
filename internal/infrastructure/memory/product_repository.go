package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo adaptador en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el adaptador sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if filter.Archived != nil && p.Archived != *filter.Archived {
			continue
		}
		list = append(list, cloneProduct(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) ListActiveBySKUs(_ context.Context, skus []string) (map[string]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	want := make(map[string]bool, len(skus))
	for _, s := range skus {
		want[s] = true
	}
	out := map[string]*entity.Product{}
	for _, p := range r.s.products {
		if !p.Archived && want[p.SKU] {
			out[p.SKU] = cloneProduct(p)
		}
	}
	return out, nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTaken(p.SKU, p.ID) {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *cloneProduct(*p)
	return nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.skuTaken(p.SKU, p.ID) {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *cloneProduct(*p)
	return nil
}

func (r *ProductRepo) SetArchived(_ context.Context, id string, archived bool) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	p.Archived = archived
	r.s.products[id] = p
	return cloneProduct(p), nil
}

func (r *ProductRepo) skuTaken(sku, exceptID string) bool {
	for id, p := range r.s.products {
		if p.SKU == sku && id != exceptID {
			return true
		}
	}
	return false
}

func cloneProduct(p entity.Product) *entity.Product {
	if p.BOM != nil {
		p.BOM = append([]entity.BOMLine(nil), p.BOM...)
	}
	return &p
}
