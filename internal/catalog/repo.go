package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgQueries implements Querier against PostgreSQL.
type PgQueries struct {
	Pool *pgxpool.Pool
}

const searchProductsSQL = `
SELECT code, name, COALESCE(unit, '')
FROM products
WHERE name ILIKE '%' || $1 || '%'
ORDER BY name ASC
LIMIT $2`

// SearchProducts matches product names case-insensitively.
func (q *PgQueries) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	rows, err := q.Pool.Query(ctx, searchProductsSQL, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

const listPopularProductsSQL = `
SELECT p.code, p.name, COALESCE(p.unit, '')
FROM products p
JOIN price_observations o ON o.product_code = p.code
GROUP BY p.code, p.name, p.unit
ORDER BY COUNT(o.id) DESC, p.name ASC
LIMIT $1`

// ListPopularProducts ranks products by how often their price was reported.
func (q *PgQueries) ListPopularProducts(ctx context.Context, limit int) ([]Product, error) {
	rows, err := q.Pool.Query(ctx, listPopularProductsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

type pgRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanProducts(rows pgRows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.Code, &p.Name, &p.Unit); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}
