package optimize

// SingleStore finds the one store that can supply every requested item at the
// lowest total. A store missing even one item is disqualified. Ties resolve to
// the first store in matrix order. Returns nil when no store qualifies, or
// when the item list is empty.
func SingleStore(items []Item, m *Matrix) *Result {
	if len(items) == 0 {
		return nil
	}
	var best *Result
	for _, store := range m.Stores() {
		var total Money
		lines := make([]Line, 0, len(items))
		covered := true
		for _, it := range items {
			obs, ok := m.Price(it.Code, store)
			if !ok {
				covered = false
				break
			}
			lineTotal := obs.UnitPrice * Money(it.Quantity)
			lines = append(lines, Line{Item: it, UnitPrice: obs.UnitPrice, LineTotal: lineTotal})
			total += lineTotal
		}
		if !covered {
			continue
		}
		if best == nil || total < best.Total {
			best = &Result{
				Type:     TypeSingle,
				Stores:   []string{store},
				Total:    total,
				Items:    map[string][]Line{store: lines},
				Complete: true,
			}
		}
	}
	return best
}

// TwoStore enumerates unordered store pairs (i < j in matrix order) and
// assigns each item to the cheaper of the two, or the only one carrying it.
// An exact price tie goes to the first-named store of the pair. A pair that
// jointly misses any item is disqualified. A store that ends up with no lines
// is dropped from the reported result, though the pair still had to cover the
// whole list to qualify. Returns nil with fewer than two stores or when no
// pair covers everything.
func TwoStore(items []Item, m *Matrix) *Result {
	stores := m.Stores()
	if len(items) == 0 || len(stores) < 2 {
		return nil
	}
	var best *Result
	for i := 0; i < len(stores); i++ {
		for j := i + 1; j < len(stores); j++ {
			first, second := stores[i], stores[j]
			var total Money
			var firstLines, secondLines []Line
			covered := true
			for _, it := range items {
				a, hasA := m.Price(it.Code, first)
				b, hasB := m.Price(it.Code, second)
				if !hasA && !hasB {
					covered = false
					break
				}
				if hasA && (!hasB || a.UnitPrice <= b.UnitPrice) {
					lineTotal := a.UnitPrice * Money(it.Quantity)
					firstLines = append(firstLines, Line{Item: it, UnitPrice: a.UnitPrice, LineTotal: lineTotal})
					total += lineTotal
				} else {
					lineTotal := b.UnitPrice * Money(it.Quantity)
					secondLines = append(secondLines, Line{Item: it, UnitPrice: b.UnitPrice, LineTotal: lineTotal})
					total += lineTotal
				}
			}
			if !covered {
				continue
			}
			if best == nil || total < best.Total {
				res := &Result{Type: TypeDouble, Total: total, Items: map[string][]Line{}, Complete: true}
				if len(firstLines) > 0 {
					res.Stores = append(res.Stores, first)
					res.Items[first] = firstLines
				}
				if len(secondLines) > 0 {
					res.Stores = append(res.Stores, second)
					res.Items[second] = secondLines
				}
				best = res
			}
		}
	}
	return best
}

// Optimal assigns every item independently to its cheapest store, ignoring
// how many stores that takes. Items with no price anywhere are skipped and
// flagged through Complete=false. Returns nil only when not a single item
// could be priced.
func Optimal(items []Item, m *Matrix) *Result {
	if len(items) == 0 {
		return nil
	}
	res := &Result{Type: TypeOptimal, Items: map[string][]Line{}, Complete: true}
	for _, it := range items {
		var bestStore string
		var bestPrice Money
		for _, store := range m.StoresFor(it.Code) {
			obs, _ := m.Price(it.Code, store)
			if bestStore == "" || obs.UnitPrice < bestPrice {
				bestStore = store
				bestPrice = obs.UnitPrice
			}
		}
		if bestStore == "" {
			res.Complete = false
			continue
		}
		lineTotal := bestPrice * Money(it.Quantity)
		if _, ok := res.Items[bestStore]; !ok {
			res.Stores = append(res.Stores, bestStore)
		}
		res.Items[bestStore] = append(res.Items[bestStore], Line{Item: it, UnitPrice: bestPrice, LineTotal: lineTotal})
		res.Total += lineTotal
	}
	if len(res.Stores) == 0 {
		return nil
	}
	return res
}
