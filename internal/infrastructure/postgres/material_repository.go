package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, variant, sku, on_hand, reorder_point, unit_cost, archived, created_at`

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.Name, &m.Variant, &m.SKU, &m.OnHand, &m.ReorderPoint, &m.UnitCost, &m.Archived, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// getOne ejecuta una consulta de una fila; sin filas devuelve (nil, nil).
func (r *MaterialRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence(op, err)
	}
	return m, nil
}

// List lista materiales ordenados por nombre.
func (r *MaterialRepo) List(ctx context.Context, filter repository.MaterialFilter) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials`
	var args []any
	if filter.Archived != nil {
		query += ` WHERE archived = $1`
		args = append(args, *filter.Archived)
	}
	query += ` ORDER BY name, sku`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list materials", err)
	}
	defer rows.Close()
	list := make([]*entity.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, domain.Persistence("scan material", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list materials", err)
	}
	return list, nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.getOne(ctx, "get material", `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetBySKU obtiene un material por SKU.
func (r *MaterialRepo) GetBySKU(ctx context.Context, sku string) (*entity.Material, error) {
	return r.getOne(ctx, "get material by sku", `SELECT `+materialColumns+` FROM materials WHERE sku = $1`, sku)
}

// Create persiste un nuevo material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Variant, m.SKU, m.OnHand, m.ReorderPoint, m.UnitCost, m.Archived, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.Persistence("insert material", err)
	}
	return nil
}

// Update actualiza los datos descriptivos. on_hand no se toca (se cambia por SetQuantity/AddQuantity).
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, variant = $3, sku = $4, reorder_point = $5, unit_cost = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Variant, m.SKU, m.ReorderPoint, m.UnitCost)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.Persistence("update material", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetQuantity escribe un valor absoluto en una sola sentencia y devuelve la fila escrita.
func (r *MaterialRepo) SetQuantity(ctx context.Context, id string, qty int) (*entity.Material, error) {
	if qty < 0 {
		return nil, domain.Validation("cantidad negativa")
	}
	return r.getOne(ctx, "update material quantity",
		`UPDATE materials SET on_hand = $2 WHERE id = $1 RETURNING `+materialColumns, id, qty)
}

// AddQuantity aplica el delta de forma atómica (GREATEST evita negativos).
// Con unitCost bloquea la fila (SELECT FOR UPDATE) para recalcular el costo promedio en la misma transacción.
func (r *MaterialRepo) AddQuantity(ctx context.Context, id string, delta int, unitCost *decimal.Decimal) (*entity.Material, error) {
	if unitCost == nil || delta <= 0 {
		return r.getOne(ctx, "add material quantity",
			`UPDATE materials SET on_hand = GREATEST(on_hand + $2, 0) WHERE id = $1 RETURNING `+materialColumns, id, delta)
	}

	var out *entity.Material
	err := runInTx(ctx, r.q, func(tx pgx.Tx) error {
		txRepo := NewMaterialRepository(tx)
		cur, err := txRepo.getOne(ctx, "lock material",
			`SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
		if err != nil || cur == nil {
			return err
		}
		cost := inventory.CostCalculator(cur.OnHand, cur.UnitCost, delta, *unitCost)
		out, err = txRepo.getOne(ctx, "add material quantity",
			`UPDATE materials SET on_hand = $2, unit_cost = $3 WHERE id = $1 RETURNING `+materialColumns,
			id, inventory.ClampQuantity(cur.OnHand+delta), cost)
		return err
	})
	if err != nil {
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, domain.Persistence("add material quantity", err)
	}
	return out, nil
}

// SetArchived archiva o restaura el material.
func (r *MaterialRepo) SetArchived(ctx context.Context, id string, archived bool) (*entity.Material, error) {
	return r.getOne(ctx, "archive material",
		`UPDATE materials SET archived = $2 WHERE id = $1 RETURNING `+materialColumns, id, archived)
}

// skuList normaliza una lista de SKUs para ANY($1).
func skuList(skus []string) []string {
	out := make([]string, 0, len(skus))
	seen := make(map[string]bool, len(skus))
	for _, s := range skus {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
