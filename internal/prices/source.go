// Package prices resolves the latest observed unit price of each product at
// every store that carries it.
package prices

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Row is one latest price observation for a product at a store.
type Row struct {
	ProductCode string `json:"productCode"`
	StoreName   string `json:"storeName"`
	StoreCity   string `json:"storeCity,omitempty"`
	UnitPrice   int64  `json:"price"`
}

// Querier abstracts the database access used by price sources.
type Querier interface {
	ListLatestPrices(ctx context.Context, codes []string) ([]Row, error)
}

// PgSource reads latest prices from PostgreSQL.
type PgSource struct {
	Pool *pgxpool.Pool
}

const listLatestPricesSQL = `
SELECT product_code, store_name, COALESCE(store_city, ''), price_minor
FROM latest_prices
WHERE product_code = ANY($1)
ORDER BY store_name ASC, product_code ASC`

// ListLatestPrices returns the newest observation per product/store pair for
// the given product codes, ordered by store then product so downstream store
// ordering is stable across calls.
func (s *PgSource) ListLatestPrices(ctx context.Context, codes []string) ([]Row, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	rows, err := s.Pool.Query(ctx, listLatestPricesSQL, codes)
	if err != nil {
		return nil, fmt.Errorf("query latest prices: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ProductCode, &r.StoreName, &r.StoreCity, &r.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan latest price: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate latest prices: %w", err)
	}
	return out, nil
}
