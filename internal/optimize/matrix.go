package optimize

// productPrices keeps the per-product store order alongside the lookup so
// tie-breaking never depends on map iteration.
type productPrices struct {
	order   []string
	byStore map[string]Observation
}

// Matrix is the product × store price lookup built fresh for one computation.
// Store ordering is the order of first appearance in the input rows, both
// globally and per product.
type Matrix struct {
	products map[string]*productPrices
	stores   []string
}

// BuildMatrix folds price rows into a Matrix. Duplicate (product, store)
// pairs are tolerated; the last row wins.
func BuildMatrix(rows []Observation) *Matrix {
	m := &Matrix{products: make(map[string]*productPrices, len(rows))}
	seen := make(map[string]struct{})
	for _, row := range rows {
		p, ok := m.products[row.ProductCode]
		if !ok {
			p = &productPrices{byStore: make(map[string]Observation)}
			m.products[row.ProductCode] = p
		}
		if _, ok := p.byStore[row.StoreName]; !ok {
			p.order = append(p.order, row.StoreName)
		}
		p.byStore[row.StoreName] = row
		if _, ok := seen[row.StoreName]; !ok {
			seen[row.StoreName] = struct{}{}
			m.stores = append(m.stores, row.StoreName)
		}
	}
	return m
}

// Empty reports whether no rows at all were folded in. Callers use this to
// distinguish a no-data state from an all-infeasible one.
func (m *Matrix) Empty() bool {
	return len(m.products) == 0
}

// Stores returns the distinct store names in first-appearance order.
func (m *Matrix) Stores() []string {
	return m.stores
}

// Price returns the observation for a product at a store, if any.
func (m *Matrix) Price(code, store string) (Observation, bool) {
	p, ok := m.products[code]
	if !ok {
		return Observation{}, false
	}
	obs, ok := p.byStore[store]
	return obs, ok
}

// StoresFor returns the stores carrying a product, in first-appearance order.
func (m *Matrix) StoresFor(code string) []string {
	p, ok := m.products[code]
	if !ok {
		return nil
	}
	return p.order
}

// MissingFor lists the requested product codes with no price anywhere.
func (m *Matrix) MissingFor(items []Item) []string {
	var missing []string
	for _, it := range items {
		if _, ok := m.products[it.Code]; !ok {
			missing = append(missing, it.Code)
		}
	}
	return missing
}
