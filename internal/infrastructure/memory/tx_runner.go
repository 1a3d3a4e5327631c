package memory

import (
	"context"

	"github.com/jhoicas/Fulfillment-api/internal/application/fulfillment"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

var _ fulfillment.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las "transacciones" en memoria; si fn falla elimina las órdenes que insertó (con sus líneas).
// Escrituras de otras peticiones sobre órdenes existentes no se tocan.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con un OrderRepository que registra las órdenes creadas.
func (r *TxRunner) Run(ctx context.Context, fn func(orders repository.OrderRepository) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	tx := &txOrderRepo{OrderRepo: NewOrderRepository(r.s)}
	if err := fn(tx); err != nil {
		r.s.removeOrders(tx.created)
		return err
	}
	return nil
}

type txOrderRepo struct {
	*OrderRepo
	created []string
}

func (r *txOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if err := r.OrderRepo.Create(ctx, o); err != nil {
		return err
	}
	r.created = append(r.created, o.ID)
	return nil
}
