package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, code, channel, external_id, customer_name, status, carrier, tracking_number, created_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.Code, &o.Channel, &o.ExternalID, &o.CustomerName, &o.Status,
		&o.Carrier, &o.TrackingNumber, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence(op, err)
	}
	return o, nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, "get order", `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetByCode obtiene una orden por su código corto.
func (r *OrderRepo) GetByCode(ctx context.Context, code string) (*entity.Order, error) {
	return r.getOne(ctx, "get order by code", `SELECT `+orderColumns+` FROM orders WHERE code = $1`, code)
}

// GetByChannelAndExternalID obtiene la orden importada desde un canal externo.
func (r *OrderRepo) GetByChannelAndExternalID(ctx context.Context, channel, externalID string) (*entity.Order, error) {
	return r.getOne(ctx, "get order by external id",
		`SELECT `+orderColumns+` FROM orders WHERE channel = $1 AND external_id = $2`, channel, externalID)
}

// List lista órdenes, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Channel != "" {
		args = append(args, filter.Channel)
		where = append(where, fmt.Sprintf("channel = $%d", len(args)))
	}
	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list orders", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.Persistence("scan order", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list orders", err)
	}
	return list, nil
}

// Create persiste la cabecera de la orden. Distingue la colisión del código de la de (channel, external_id).
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Code, o.Channel, o.ExternalID, o.CustomerName, string(o.Status), o.Carrier, o.TrackingNumber, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			switch violatedConstraint(err) {
			case constraintOrderCode:
				return repository.ErrCodeTaken
			case constraintOrderExternalID:
				return fmt.Errorf("%w: orden %s/%s ya existe", domain.ErrDuplicate, o.Channel, derefString(o.ExternalID))
			}
			return fmt.Errorf("%w: orden %s ya existe", domain.ErrDuplicate, o.ID)
		}
		return domain.Persistence("insert order", err)
	}
	return nil
}

// UpdateStatus escribe {status, carrier?, tracking?} en un único UPDATE ... RETURNING, solo si la orden
// sigue en patch.From. Sin fila afectada distingue orden inexistente (nil, nil) de estado cambiado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, patch entity.StatusPatch) (*entity.Order, error) {
	query := `
		UPDATE orders SET
			status = $2,
			carrier = COALESCE($3, carrier),
			tracking_number = COALESCE($4, tracking_number)
		WHERE id = $1 AND status = $5
		RETURNING ` + orderColumns
	updated, err := r.getOne(ctx, "update order status", query,
		id, string(patch.Status), patch.Carrier, patch.TrackingNumber, string(patch.From))
	if err != nil || updated != nil {
		return updated, err
	}
	cur, err := r.GetByID(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: la orden está en %s, se esperaba %s", domain.ErrInvalidTransition, cur.Status, patch.From)
}

// CreateLines inserta las líneas en lote (usar dentro de la misma tx que Create).
func (r *OrderRepo) CreateLines(ctx context.Context, lines []*entity.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(`INSERT INTO order_lines (id, order_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			l.ID, l.OrderID, l.ProductID, l.Quantity)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return domain.Persistence("insert order line", err)
		}
	}
	return nil
}

// ListLines lista las líneas de una orden.
func (r *OrderRepo) ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, product_id, quantity FROM order_lines WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, domain.Persistence("list order lines", err)
	}
	defer rows.Close()
	list := make([]*entity.OrderLine, 0)
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return nil, domain.Persistence("scan order line", err)
		}
		list = append(list, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list order lines", err)
	}
	return list, nil
}

// Delete elimina la orden; las líneas caen por ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return domain.Persistence("delete order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus cuenta órdenes agrupadas por estado.
func (r *OrderRepo) CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, domain.Persistence("count orders", err)
	}
	defer rows.Close()
	out := map[entity.OrderStatus]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, domain.Persistence("scan order count", err)
		}
		out[entity.OrderStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("count orders", err)
	}
	return out, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
