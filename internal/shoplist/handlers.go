package shoplist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-cjenovnik/internal/common"
	"github.com/noah-isme/backend-cjenovnik/internal/optimize"
)

// Handlers serves the shopping list HTTP surface.
type Handlers struct {
	Svc      *Service
	Validate *validator.Validate
}

// NewHandlers builds the HTTP handler set.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{Svc: svc, Validate: validator.New()}
}

// Mount registers shopping list routes on the router. The rate limiter, when
// configured, guards only the optimization endpoints.
func (h *Handlers) Mount(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Route("/lists", func(r chi.Router) {
		r.Post("/", h.CreateList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetList)
			r.Delete("/", h.DeleteList)
			r.Post("/items", h.AddItem)
			r.Patch("/items/{code}", h.UpdateQuantity)
			r.Delete("/items/{code}", h.RemoveItem)
			if limit != nil {
				r.With(limit).Post("/optimize", h.OptimizeList)
			} else {
				r.Post("/optimize", h.OptimizeList)
			}
		})
	})
	if limit != nil {
		r.With(limit).Post("/optimize", h.Optimize)
	} else {
		r.Post("/optimize", h.Optimize)
	}
}

type addItemRequest struct {
	ProductCode string `json:"productCode" validate:"required"`
	DisplayName string `json:"displayName" validate:"required"`
	Quantity    int    `json:"quantity" validate:"omitempty,min=1"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type optimizeItem struct {
	ProductCode string `json:"productCode" validate:"required"`
	DisplayName string `json:"displayName"`
	Quantity    int    `json:"quantity" validate:"omitempty,min=1"`
}

type optimizeRequest struct {
	Items []optimizeItem `json:"items" validate:"required,min=1,dive"`
}

// CreateList handles POST /lists.
func (h *Handlers) CreateList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.Create(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, list)
}

// GetList handles GET /lists/{id}.
func (h *Handlers) GetList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, list)
}

// DeleteList handles DELETE /lists/{id}.
func (h *Handlers) DeleteList(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /lists/{id}/items.
func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	item := optimize.Item{Code: req.ProductCode, Name: req.DisplayName, Quantity: req.Quantity}
	list, err := h.Svc.AddItem(r.Context(), chi.URLParam(r, "id"), item)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, list)
}

// UpdateQuantity handles PATCH /lists/{id}/items/{code}.
func (h *Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if !h.decode(w, r, &req) {
		return
	}
	list, err := h.Svc.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "code"), req.Delta)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, list)
}

// RemoveItem handles DELETE /lists/{id}/items/{code}.
func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, list)
}

// OptimizeList handles POST /lists/{id}/optimize.
func (h *Handlers) OptimizeList(w http.ResponseWriter, r *http.Request) {
	plan, err := h.Svc.Optimize(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, plan)
}

// Optimize handles POST /optimize for ad-hoc baskets.
func (h *Handlers) Optimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	items := make([]optimize.Item, 0, len(req.Items))
	for _, it := range req.Items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, optimize.Item{Code: it.ProductCode, Name: it.DisplayName, Quantity: qty})
	}
	plan, err := h.Svc.OptimizeItems(r.Context(), items)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, plan)
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		common.WriteError(w, common.BadRequest("invalid JSON body", nil))
		return false
	}
	if err := h.Validate.Struct(v); err != nil {
		common.WriteError(w, common.BadRequest("validation failed", validationDetails(err)))
		return false
	}
	return true
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		common.WriteError(w, common.NotFound("shopping list not found"))
		return
	}
	common.WriteError(w, err)
}
