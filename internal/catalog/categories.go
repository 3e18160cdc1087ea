package catalog

// Category groups products by keyword search. Keywords carry both local and
// English variants because product names in the crowd-sourced data mix both.
type Category struct {
	ID       string   `json:"id"`
	Icon     string   `json:"icon"`
	Keywords []string `json:"keywords"`
}

var categories = []Category{
	{ID: "dairy", Icon: "🥛", Keywords: []string{"mlijeko", "milk", "sir", "cheese", "jogurt", "yogurt", "maslac", "butter", "pavlaka", "cream"}},
	{ID: "meat", Icon: "🥩", Keywords: []string{"meso", "meat", "piletina", "chicken", "junetina", "beef", "svinjetina", "pork", "riba", "fish", "kobasica", "sausage"}},
	{ID: "bakery", Icon: "🍞", Keywords: []string{"hljeb", "bread", "pecivo", "pastry", "kifla", "croissant", "burek", "pita"}},
	{ID: "fruits", Icon: "🥬", Keywords: []string{"voće", "fruit", "povrće", "vegetable", "jabuka", "apple", "banana", "paradajz", "tomato", "krompir", "potato", "luk", "onion"}},
	{ID: "drinks", Icon: "🥤", Keywords: []string{"voda", "water", "sok", "juice", "pivo", "beer", "vino", "wine", "kafa", "coffee", "čaj", "tea", "cola"}},
	{ID: "snacks", Icon: "🍪", Keywords: []string{"čips", "chips", "čokolada", "chocolate", "keks", "biscuit", "slatkiši", "candy", "grickalice", "snack"}},
	{ID: "hygiene", Icon: "🧴", Keywords: []string{"sapun", "soap", "šampon", "shampoo", "pasta", "toothpaste", "toalet", "toilet", "pelene", "diaper"}},
	{ID: "household", Icon: "🧹", Keywords: []string{"deterdžent", "detergent", "sredstvo", "cleaner", "smeće", "garbage", "folija", "foil"}},
}

// Categories returns the fixed category set.
func Categories() []Category {
	return categories
}

func categoryByID(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
