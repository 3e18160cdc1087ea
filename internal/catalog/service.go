// Package catalog serves product lookup for building shopping lists.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/backend-cjenovnik/internal/common"
)

// Product is a catalog entry identified by its barcode or internal code.
type Product struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// Querier abstracts catalog database access.
type Querier interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)
	ListPopularProducts(ctx context.Context, limit int) ([]Product, error)
}

const (
	defaultSearchLimit  = 10
	defaultPopularLimit = 8
	categoryKeywordCap  = 3
	categoryProductCap  = 15
)

// Service exposes catalog operations backed by the database and cache.
type Service struct {
	Q            Querier
	Cache        *Cache
	SearchLimit  int
	PopularLimit int
}

// NewService wires the catalog service.
func NewService(q Querier, cache *Cache, searchLimit, popularLimit int) *Service {
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	if popularLimit <= 0 {
		popularLimit = defaultPopularLimit
	}
	return &Service{Q: q, Cache: cache, SearchLimit: searchLimit, PopularLimit: popularLimit}
}

// Search finds products whose name contains the query, case-insensitively.
// Queries shorter than two characters are rejected to keep scans cheap. A
// non-positive limit, or one above the configured maximum, uses the maximum.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Product, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, common.BadRequest("query must be at least 2 characters", nil)
	}
	if limit <= 0 || limit > s.SearchLimit {
		limit = s.SearchLimit
	}
	return s.Q.SearchProducts(ctx, query, limit)
}

// Popular returns the most frequently observed products, cached briefly since
// popularity shifts slowly.
func (s *Service) Popular(ctx context.Context) ([]Product, error) {
	key := fmt.Sprintf("catalog:popular:%d", s.PopularLimit)
	var cached []Product
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	products, err := s.Q.ListPopularProducts(ctx, s.PopularLimit)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, products)
	return products, nil
}

// Categories returns the fixed category set.
func (s *Service) Categories(_ context.Context) []Category {
	return Categories()
}

// CategoryProducts unions search results for the first few category keywords,
// deduplicates by product code and caps the result.
func (s *Service) CategoryProducts(ctx context.Context, id string) ([]Product, error) {
	cat, ok := categoryByID(id)
	if !ok {
		return nil, common.NotFound(fmt.Sprintf("unknown category %q", id))
	}

	key := "catalog:category:" + cat.ID
	var cached []Product
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	keywords := cat.Keywords
	if len(keywords) > categoryKeywordCap {
		keywords = keywords[:categoryKeywordCap]
	}

	seen := make(map[string]struct{})
	out := make([]Product, 0, categoryProductCap)
	for _, kw := range keywords {
		products, err := s.Q.SearchProducts(ctx, kw, s.SearchLimit)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			if _, dup := seen[p.Code]; dup {
				continue
			}
			seen[p.Code] = struct{}{}
			out = append(out, p)
			if len(out) == categoryProductCap {
				s.Cache.Set(ctx, key, out)
				return out, nil
			}
		}
	}
	s.Cache.Set(ctx, key, out)
	return out, nil
}
