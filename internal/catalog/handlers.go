package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-cjenovnik/internal/common"
)

// Handlers serves the catalog HTTP surface.
type Handlers struct {
	Svc *Service
}

// NewHandlers builds the catalog handler set.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{Svc: svc}
}

// Mount registers catalog routes on the router.
func (h *Handlers) Mount(r chi.Router) {
	r.Get("/products", h.Search)
	r.Get("/products/popular", h.Popular)
	r.Get("/categories", h.Categories)
	r.Get("/categories/{id}/products", h.CategoryProducts)
}

// Search handles GET /products?q=...&limit=...
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	products, err := h.Svc.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"products": emptyIfNil(products)})
}

// Popular handles GET /products/popular.
func (h *Handlers) Popular(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.Popular(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"products": emptyIfNil(products)})
}

// Categories handles GET /categories.
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"categories": h.Svc.Categories(r.Context())})
}

// CategoryProducts handles GET /categories/{id}/products.
func (h *Handlers) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.CategoryProducts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"products": emptyIfNil(products)})
}

func emptyIfNil(products []Product) []Product {
	if products == nil {
		return []Product{}
	}
	return products
}
