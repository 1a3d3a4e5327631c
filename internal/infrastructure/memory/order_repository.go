package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo adaptador en memoria de OrderRepository.
type OrderRepo struct {
	s *Store
}

// NewOrderRepository construye el adaptador sobre el store.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) GetByCode(_ context.Context, code string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if o.Code != nil && *o.Code == code {
			o := o
			return &o, nil
		}
	}
	return nil, nil
}

func (r *OrderRepo) GetByChannelAndExternalID(_ context.Context, channel, externalID string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if o.Channel == channel && o.ExternalID != nil && *o.ExternalID == externalID {
			o := o
			return &o, nil
		}
	}
	return nil, nil
}

// List devuelve las órdenes más recientes primero.
func (r *OrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Order
	skipped := 0
	for i := len(r.s.seq) - 1; i >= 0; i-- {
		o := r.s.orders[r.s.seq[i]]
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.Channel != "" && o.Channel != filter.Channel {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(list) >= filter.Limit {
			break
		}
		list = append(list, &o)
	}
	return list, nil
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, cur := range r.s.orders {
		if o.ExternalID != nil && cur.ExternalID != nil && cur.Channel == o.Channel && *cur.ExternalID == *o.ExternalID {
			return fmt.Errorf("%w: orden %s/%s ya existe", domain.ErrDuplicate, o.Channel, *o.ExternalID)
		}
		if o.Code != nil && cur.Code != nil && *cur.Code == *o.Code {
			return repository.ErrCodeTaken
		}
	}
	r.s.orders[o.ID] = *o
	r.s.seq = append(r.s.seq, o.ID)
	return nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, patch entity.StatusPatch) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	if o.Status != patch.From {
		return nil, fmt.Errorf("%w: la orden está en %s, se esperaba %s", domain.ErrInvalidTransition, o.Status, patch.From)
	}
	o.Status = patch.Status
	if patch.Carrier != nil {
		o.Carrier = patch.Carrier
	}
	if patch.TrackingNumber != nil {
		o.TrackingNumber = patch.TrackingNumber
	}
	r.s.orders[id] = o
	return &o, nil
}

func (r *OrderRepo) CreateLines(_ context.Context, lines []*entity.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range lines {
		if _, ok := r.s.orders[l.OrderID]; !ok {
			return domain.Persistence("insert order line", domain.ErrNotFound)
		}
	}
	for _, l := range lines {
		r.s.lines[l.OrderID] = append(r.s.lines[l.OrderID], *l)
	}
	return nil
}

func (r *OrderRepo) ListLines(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	src := r.s.lines[orderID]
	out := make([]*entity.OrderLine, 0, len(src))
	for i := range src {
		l := src[i]
		out = append(out, &l)
	}
	return out, nil
}

// Delete elimina la orden y sus líneas (cascada).
func (r *OrderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.orders, id)
	delete(r.s.lines, id)
	for i, oid := range r.s.seq {
		if oid == id {
			r.s.seq = append(r.s.seq[:i], r.s.seq[i+1:]...)
			break
		}
	}
	return nil
}

func (r *OrderRepo) CountByStatus(_ context.Context) (map[entity.OrderStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[entity.OrderStatus]int{}
	for _, o := range r.s.orders {
		out[o.Status]++
	}
	return out, nil
}
