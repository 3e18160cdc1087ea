package shoplist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-cjenovnik/internal/optimize"
	"github.com/noah-isme/backend-cjenovnik/internal/prices"
)

type fakePrices struct {
	rows []prices.Row
	err  error
}

func (f *fakePrices) ListLatestPrices(_ context.Context, _ []string) ([]prices.Row, error) {
	return f.rows, f.err
}

func newTestServer(t *testing.T, src PriceSource) *httptest.Server {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(client, time.Hour)
	svc := NewService(store, src, optimize.DefaultSavingsThreshold, nil)
	h := NewHandlers(svc)

	r := chi.NewRouter()
	h.Mount(r, nil)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeList(t *testing.T, resp *http.Response) List {
	t.Helper()
	defer resp.Body.Close()
	var list List
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return list
}

func createList(t *testing.T, ts *httptest.Server) List {
	t.Helper()
	resp := doJSON(t, http.MethodPost, ts.URL+"/lists", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeList(t, resp)
}

func TestCreateAndGetList(t *testing.T) {
	ts := newTestServer(t, &fakePrices{})

	list := createList(t, ts)
	require.NotEmpty(t, list.ID)
	require.Empty(t, list.Items)

	resp := doJSON(t, http.MethodGet, ts.URL+"/lists/"+list.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeList(t, resp)
	require.Equal(t, list.ID, got.ID)
}

func TestGetUnknownListReturns404(t *testing.T) {
	ts := newTestServer(t, &fakePrices{})

	resp := doJSON(t, http.MethodGet, ts.URL+"/lists/nope", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddItemRejectsDuplicateCode(t *testing.T) {
	ts := newTestServer(t, &fakePrices{})
	list := createList(t, ts)

	payload := map[string]any{"productCode": "A", "displayName": "Mlijeko 1L", "quantity": 2}
	resp := doJSON(t, http.MethodPost, ts.URL+"/lists/"+list.ID+"/items", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeList(t, resp)
	require.Len(t, got.Items, 1)
	require.Equal(t, 2, got.Items[0].Quantity)

	resp = doJSON(t, http.MethodPost, ts.URL+"/lists/"+list.ID+"/items", payload)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAddItemValidation(t *testing.T) {
	ts := newTestServer(t, &fakePrices{})
	list := createList(t, ts)

	resp := doJSON(t, http.MethodPost, ts.URL+"/lists/"+list.ID+"/items", map[string]any{"displayName": "Bez koda"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "BAD_REQUEST", body.Error.Code)
	require.Contains(t, body.Error.Details, "ProductCode")
}

func TestUpdateQuantityFloorsAtOne(t *testing.T) {
	ts := newTestServer(t, &fakePrices{})
	list := createList(t, ts)

	doJSON(t, http.MethodPost, ts.URL+"/lists/"+list.ID+"/items",
		map[string]any{"productCode": "A", "displayName": "Kruh"}).Body.Close()

	resp := doJSON(t, http.MethodPatch, ts.URL+"/lists/"+list.ID+"/items/A", map[string]any{"delta": -5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeList(t, resp)
	require.Equal(t, 1, got.Items[0].Quantity)

	resp = doJSON(t, http.MethodPatch, ts.URL+"/lists/"+list.ID+"/items/A", map[string]any{"delta": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decodeList(t, resp)
	require.Equal(t, 4, got.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	ts := newTestServer(t, &fakePrices{})
	list := createList(t, ts)

	doJSON(t, http.MethodPost, ts.URL+"/lists/"+list.ID+"/items",
		map[string]any{"productCode": "A", "displayName": "Kruh"}).Body.Close()

	resp := doJSON(t, http.MethodDelete, ts.URL+"/lists/"+list.ID+"/items/A", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeList(t, resp)
	require.Empty(t, got.Items)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/lists/"+list.ID+"/items/A", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteList(t *testing.T) {
	ts := newTestServer(t, &fakePrices{})
	list := createList(t, ts)

	resp := doJSON(t, http.MethodDelete, ts.URL+"/lists/"+list.ID, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/lists/"+list.ID, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func decodePlan(t *testing.T, resp *http.Response) Plan {
	t.Helper()
	defer resp.Body.Close()
	var plan Plan
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&plan))
	return plan
}

func TestOptimizeAdHocBasket(t *testing.T) {
	ts := newTestServer(t, &fakePrices{rows: []prices.Row{
		{ProductCode: "A", StoreName: "Konzum", UnitPrice: 90},
		{ProductCode: "A", StoreName: "Lidl", UnitPrice: 150},
		{ProductCode: "B", StoreName: "Konzum", UnitPrice: 300},
		{ProductCode: "B", StoreName: "Lidl", UnitPrice: 100},
	}})

	resp := doJSON(t, http.MethodPost, ts.URL+"/optimize", map[string]any{
		"items": []map[string]any{
			{"productCode": "A", "displayName": "Mlijeko", "quantity": 2},
			{"productCode": "B", "displayName": "Kava"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decodePlan(t, resp)

	require.NotNil(t, plan.Single)
	require.EqualValues(t, 400, plan.Single.Total)
	require.NotNil(t, plan.Double)
	require.EqualValues(t, 280, plan.Double.Total)
	require.Equal(t, []string{"Konzum", "Lidl"}, plan.Double.Stores)
	require.Equal(t, optimize.TypeDouble, plan.Recommended)
	require.NotNil(t, plan.FormattedTotals)
	require.Equal(t, "2.80", plan.FormattedTotals.Double)
}

func TestOptimizeSavedListPrefersSingleOnSmallSavings(t *testing.T) {
	ts := newTestServer(t, &fakePrices{rows: []prices.Row{
		{ProductCode: "A", StoreName: "Konzum", UnitPrice: 100},
		{ProductCode: "A", StoreName: "Lidl", UnitPrice: 150},
		{ProductCode: "B", StoreName: "Konzum", UnitPrice: 300},
		{ProductCode: "B", StoreName: "Lidl", UnitPrice: 200},
	}})
	list := createList(t, ts)

	doJSON(t, http.MethodPost, ts.URL+"/lists/"+list.ID+"/items",
		map[string]any{"productCode": "A", "displayName": "Mlijeko", "quantity": 2}).Body.Close()
	doJSON(t, http.MethodPost, ts.URL+"/lists/"+list.ID+"/items",
		map[string]any{"productCode": "B", "displayName": "Kava"}).Body.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/lists/"+list.ID+"/optimize", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decodePlan(t, resp)

	require.NotNil(t, plan.Single)
	require.EqualValues(t, 500, plan.Single.Total)
	require.NotNil(t, plan.Double)
	require.EqualValues(t, 400, plan.Double.Total)
	require.Equal(t, optimize.TypeSingle, plan.Recommended)
}

func TestOptimizeEmptyItemsRejected(t *testing.T) {
	ts := newTestServer(t, &fakePrices{})

	resp := doJSON(t, http.MethodPost, ts.URL+"/optimize", map[string]any{"items": []map[string]any{}})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOptimizeUpstreamFailure(t *testing.T) {
	ts := newTestServer(t, &fakePrices{err: errors.New("backend down")})

	resp := doJSON(t, http.MethodPost, ts.URL+"/optimize", map[string]any{
		"items": []map[string]any{{"productCode": "A", "displayName": "Mlijeko"}},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestOptimizeNoPriceData(t *testing.T) {
	ts := newTestServer(t, &fakePrices{})

	resp := doJSON(t, http.MethodPost, ts.URL+"/optimize", map[string]any{
		"items": []map[string]any{{"productCode": "A", "displayName": "Mlijeko"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decodePlan(t, resp)
	require.True(t, plan.NoData)
	require.Empty(t, plan.Recommended)
}
