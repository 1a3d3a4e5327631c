package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, variant, sku, price, bom, archived, created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// La BOM se guarda como JSONB ordenado.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Variant, &p.SKU, &p.Price, &p.BOM, &p.Archived, &p.CreatedAt); err != nil {
		return nil, err
	}
	if len(p.BOM) == 0 {
		p.BOM = nil
	}
	return &p, nil
}

// bomParam evita escribir NULL en la columna NOT NULL.
func bomParam(bom []entity.BOMLine) []entity.BOMLine {
	if bom == nil {
		return []entity.BOMLine{}
	}
	return bom
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence(op, err)
	}
	return p, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Persistence("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list products", err)
	}
	return list, nil
}

// List lista productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	if filter.Archived != nil {
		return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE archived = $1 ORDER BY name, sku`, *filter.Archived)
	}
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, sku`)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku", `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// ListActiveBySKUs resuelve SKUs contra los productos no archivados.
func (r *ProductRepo) ListActiveBySKUs(ctx context.Context, skus []string) (map[string]*entity.Product, error) {
	out := map[string]*entity.Product{}
	skus = skuList(skus)
	if len(skus) == 0 {
		return out, nil
	}
	list, err := r.list(ctx,
		`SELECT `+productColumns+` FROM products WHERE archived = FALSE AND sku = ANY($1)`, skus)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.SKU] = p
	}
	return out, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Variant, p.SKU, p.Price, bomParam(p.BOM), p.Archived, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.Persistence("insert product", err)
	}
	return nil
}

// Update actualiza nombre, variante, SKU, precio y BOM.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, variant = $3, sku = $4, price = $5, bom = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Variant, p.SKU, p.Price, bomParam(p.BOM))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.Persistence("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetArchived archiva o restaura el producto.
func (r *ProductRepo) SetArchived(ctx context.Context, id string, archived bool) (*entity.Product, error) {
	return r.getOne(ctx, "archive product",
		`UPDATE products SET archived = $2 WHERE id = $1 RETURNING `+productColumns, id, archived)
}
