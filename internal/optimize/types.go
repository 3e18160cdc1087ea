// Package optimize computes multi-store shopping plans over a snapshot of
// community price data. All computation is pure: a plan is a function of the
// requested items and the price rows handed in, with deterministic tie-breaking.
package optimize

// Money represents a monetary value stored in minor units.
type Money = int64

// Item is a single entry on a shopping list. Identity is the product code;
// quantity is always at least 1.
type Item struct {
	Code     string `json:"productCode"`
	Name     string `json:"displayName"`
	Quantity int    `json:"quantity"`
}

// Observation is the latest known price of one product at one store.
type Observation struct {
	ProductCode string `json:"productCode"`
	StoreName   string `json:"storeName"`
	StoreCity   string `json:"storeCity,omitempty"`
	UnitPrice   Money  `json:"price"`
}

// Line is one item priced at the store it was assigned to.
type Line struct {
	Item      Item  `json:"item"`
	UnitPrice Money `json:"unitPrice"`
	LineTotal Money `json:"lineTotal"`
}

// Strategy keys as they appear in API payloads.
const (
	TypeSingle  = "single"
	TypeDouble  = "double"
	TypeOptimal = "optimal"
)

// Result is the outcome of one purchasing strategy. Stores lists only stores
// that received at least one line, in assignment order.
type Result struct {
	Type     string            `json:"type"`
	Stores   []string          `json:"stores"`
	Total    Money             `json:"total"`
	Items    map[string][]Line `json:"items"`
	Complete bool              `json:"complete"`
}

// Bundle groups the three strategy results of one computation. A nil result
// means the strategy was infeasible for the given matrix.
type Bundle struct {
	Single          *Result  `json:"single"`
	Double          *Result  `json:"double"`
	Optimal         *Result  `json:"optimal"`
	Baseline        Money    `json:"baseline"`
	MissingProducts []string `json:"missingProducts,omitempty"`
	NoData          bool     `json:"noData,omitempty"`
}
