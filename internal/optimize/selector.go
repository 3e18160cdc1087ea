package optimize

// DefaultSavingsThreshold is the minimum saving, in minor units, before a
// two-store split is recommended over a single store.
const DefaultSavingsThreshold Money = 100

// Recommend picks the default strategy key for a computed bundle. The split
// is only recommended when it beats the single store by more than the
// threshold; otherwise the simpler plan wins. Returns an empty string when no
// strategy produced a usable result.
func Recommend(b Bundle, threshold Money) string {
	if b.Single != nil && b.Double != nil {
		if b.Single.Total-b.Double.Total > threshold {
			return TypeDouble
		}
		return TypeSingle
	}
	if b.Single != nil {
		return TypeSingle
	}
	if b.Optimal != nil && len(b.Optimal.Stores) > 0 {
		return TypeOptimal
	}
	return ""
}
