package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	products    []Product
	popular     []Product
	searchCalls int
}

func (f *fakeQuerier) SearchProducts(_ context.Context, query string, limit int) ([]Product, error) {
	f.searchCalls++
	var out []Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeQuerier) ListPopularProducts(_ context.Context, limit int) ([]Product, error) {
	if len(f.popular) > limit {
		return f.popular[:limit], nil
	}
	return f.popular, nil
}

func newTestServer(t *testing.T, q Querier) *httptest.Server {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	h := NewHandlers(NewService(q, cache, 10, 8))

	r := chi.NewRouter()
	h.Mount(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func getProducts(t *testing.T, url string) (int, []Product) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body struct {
		Products []Product `json:"products"`
	}
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body.Products
}

func TestSearchMatchesByName(t *testing.T) {
	ts := newTestServer(t, &fakeQuerier{products: []Product{
		{Code: "1", Name: "Mlijeko 2.8%", Unit: "1L"},
		{Code: "2", Name: "Kruh bijeli", Unit: "500g"},
	}})

	status, products := getProducts(t, ts.URL+"/products?q=mlijeko")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, products, 1)
	require.Equal(t, "1", products[0].Code)
}

func TestSearchRejectsShortQuery(t *testing.T) {
	ts := newTestServer(t, &fakeQuerier{})

	status, _ := getProducts(t, ts.URL+"/products?q=m")
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = getProducts(t, ts.URL+"/products")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestSearchEmptyResultIsArray(t *testing.T) {
	ts := newTestServer(t, &fakeQuerier{})

	resp, err := http.Get(ts.URL + "/products?q=nema")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	require.JSONEq(t, "[]", string(raw["products"]))
}

func TestPopularUsesCache(t *testing.T) {
	q := &fakeQuerier{popular: []Product{{Code: "1", Name: "Mlijeko"}}}
	ts := newTestServer(t, q)

	status, products := getProducts(t, ts.URL+"/products/popular")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, products, 1)

	q.popular = nil
	status, products = getProducts(t, ts.URL+"/products/popular")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, products, 1)
}

func TestCategoriesList(t *testing.T) {
	ts := newTestServer(t, &fakeQuerier{})

	resp, err := http.Get(ts.URL + "/categories")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Categories, 8)
	require.Equal(t, "dairy", body.Categories[0].ID)
}

func TestCategoryProductsDeduplicates(t *testing.T) {
	q := &fakeQuerier{products: []Product{
		{Code: "1", Name: "Mlijeko svježe"},
		{Code: "2", Name: "Milk mlijeko UHT"},
		{Code: "3", Name: "Sir gauda"},
	}}
	ts := newTestServer(t, q)

	status, products := getProducts(t, ts.URL+"/categories/dairy/products")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, products, 3)

	codes := map[string]bool{}
	for _, p := range products {
		require.False(t, codes[p.Code])
		codes[p.Code] = true
	}
	require.Equal(t, 3, q.searchCalls)
}

func TestCategoryProductsUnknownCategory(t *testing.T) {
	ts := newTestServer(t, &fakeQuerier{})

	status, _ := getProducts(t, ts.URL+"/categories/electronics/products")
	require.Equal(t, http.StatusNotFound, status)
}

func TestCategoryProductsCached(t *testing.T) {
	q := &fakeQuerier{products: []Product{{Code: "1", Name: "Mlijeko"}}}
	ts := newTestServer(t, q)

	status, _ := getProducts(t, ts.URL+"/categories/dairy/products")
	require.Equal(t, http.StatusOK, status)
	calls := q.searchCalls

	status, _ = getProducts(t, ts.URL+"/categories/dairy/products")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, calls, q.searchCalls)
}
