package shoplist

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/backend-cjenovnik/internal/common"
	"github.com/noah-isme/backend-cjenovnik/internal/obs"
	"github.com/noah-isme/backend-cjenovnik/internal/optimize"
	"github.com/noah-isme/backend-cjenovnik/internal/prices"
)

// PriceSource supplies latest prices for the products on a list.
type PriceSource interface {
	ListLatestPrices(ctx context.Context, codes []string) ([]prices.Row, error)
}

// PlanTotals holds the strategy totals formatted for display.
type PlanTotals struct {
	Single  string `json:"single,omitempty"`
	Double  string `json:"double,omitempty"`
	Optimal string `json:"optimal,omitempty"`
}

// Plan is the computed shopping plan for a basket.
type Plan struct {
	optimize.Bundle
	Recommended     string      `json:"recommended,omitempty"`
	FormattedTotals *PlanTotals `json:"formattedTotals,omitempty"`
}

func formatTotals(b optimize.Bundle) *PlanTotals {
	if b.Single == nil && b.Double == nil && b.Optimal == nil {
		return nil
	}
	t := &PlanTotals{}
	if b.Single != nil {
		t.Single = common.FormatMinorUnits(b.Single.Total)
	}
	if b.Double != nil {
		t.Double = common.FormatMinorUnits(b.Double.Total)
	}
	if b.Optimal != nil {
		t.Optimal = common.FormatMinorUnits(b.Optimal.Total)
	}
	return t
}

// Service exposes shopping list operations.
type Service struct {
	Store     *Store
	Prices    PriceSource
	Threshold optimize.Money
	Metrics   *obs.OptimizeMetrics
}

// NewService wires the list store, the price source and the savings threshold
// that promotes a two-store split.
func NewService(store *Store, src PriceSource, threshold optimize.Money, metrics *obs.OptimizeMetrics) *Service {
	if threshold <= 0 {
		threshold = optimize.DefaultSavingsThreshold
	}
	return &Service{Store: store, Prices: src, Threshold: threshold, Metrics: metrics}
}

// Create starts a new empty shopping list.
func (s *Service) Create(ctx context.Context) (*List, error) {
	return s.Store.Create(ctx)
}

// Get returns a list by id.
func (s *Service) Get(ctx context.Context, id string) (*List, error) {
	return s.Store.Get(ctx, id)
}

// Delete removes a list by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}

// AddItem appends an item to the list. Adding a product code already present
// is rejected so quantities are adjusted explicitly instead.
func (s *Service) AddItem(ctx context.Context, id string, item optimize.Item) (*List, error) {
	list, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, existing := range list.Items {
		if existing.Code == item.Code {
			return nil, common.Conflict(fmt.Sprintf("product %q is already on the list", item.Code))
		}
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	list.Items = append(list.Items, item)
	if err := s.Store.Save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateQuantity adjusts an item's quantity by delta, never dropping below one.
func (s *Service) UpdateQuantity(ctx context.Context, id, code string, delta int) (*List, error) {
	list, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range list.Items {
		if list.Items[i].Code != code {
			continue
		}
		qty := list.Items[i].Quantity + delta
		if qty < 1 {
			qty = 1
		}
		list.Items[i].Quantity = qty
		if err := s.Store.Save(ctx, list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, common.NotFound(fmt.Sprintf("product %q is not on the list", code))
}

// RemoveItem deletes an item from the list.
func (s *Service) RemoveItem(ctx context.Context, id, code string) (*List, error) {
	list, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	kept := list.Items[:0]
	removed := false
	for _, item := range list.Items {
		if item.Code == code {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil, common.NotFound(fmt.Sprintf("product %q is not on the list", code))
	}
	list.Items = kept
	if err := s.Store.Save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Optimize computes the shopping plan for a saved list.
func (s *Service) Optimize(ctx context.Context, id string) (*Plan, error) {
	list, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.OptimizeItems(ctx, list.Items)
}

// OptimizeItems computes the shopping plan for an ad-hoc basket.
func (s *Service) OptimizeItems(ctx context.Context, items []optimize.Item) (*Plan, error) {
	start := time.Now()
	codes := make([]string, 0, len(items))
	for _, item := range items {
		codes = append(codes, item.Code)
	}
	rows, err := s.Prices.ListLatestPrices(ctx, codes)
	if err != nil {
		return nil, common.Upstream("price lookup failed", err)
	}

	observations := make([]optimize.Observation, 0, len(rows))
	for _, r := range rows {
		observations = append(observations, optimize.Observation{
			ProductCode: r.ProductCode,
			StoreName:   r.StoreName,
			StoreCity:   r.StoreCity,
			UnitPrice:   r.UnitPrice,
		})
	}

	bundle := optimize.Compute(items, observations)
	plan := &Plan{
		Bundle:          bundle,
		Recommended:     optimize.Recommend(bundle, s.Threshold),
		FormattedTotals: formatTotals(bundle),
	}
	s.Metrics.Observe(plan.Recommended, len(items), time.Since(start))
	return plan, nil
}
