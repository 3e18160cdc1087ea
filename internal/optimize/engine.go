package optimize

// Compute builds the price matrix from the given rows and runs all three
// strategies over it. Rows are assumed to already carry latest-price-per-store
// semantics; ordering is free. Zero rows yields a NoData bundle so callers can
// show an empty state instead of three infeasible strategies.
func Compute(items []Item, rows []Observation) Bundle {
	m := BuildMatrix(rows)
	if m.Empty() {
		return Bundle{NoData: true}
	}
	b := Bundle{
		Single:          SingleStore(items, m),
		Double:          TwoStore(items, m),
		Optimal:         Optimal(items, m),
		MissingProducts: m.MissingFor(items),
	}
	if b.Single != nil {
		b.Baseline = b.Single.Total
	}
	return b
}
