package model

// CombinationItem is one distinct catalog item inside a combination together
// with the number of times it was picked.
//
// @Description Menu item and its repeat count within a combination
type CombinationItem struct {
	ID       string `json:"id" example:"65f1c0e2a1b2c3d4e5f60718"`
	Name     string `json:"name" example:"Americano"`
	Price    int    `json:"price" example:"4000"`
	Category string `json:"category,omitempty" example:"Coffee"`
	Count    int    `json:"count" example:"2"`
}

// Subtotal returns price * count.
func (i CombinationItem) Subtotal() int {
	return i.Price * i.Count
}

// Combination is a formatted multiset of menu items.
//
// @Description Recommended combination of menu items
// @Example {"items": [{"id": "a", "name": "Americano", "price": 4000, "count": 2}], "total_price": 8000, "description": "Americano 2개"}
type Combination struct {
	Items       []CombinationItem `json:"items"`
	TotalPrice  int               `json:"total_price" example:"8000"`
	Description string            `json:"description" example:"Americano 2개"`
}

// ItemCount returns the number of picks in the combination.
func (c Combination) ItemCount() int {
	total := 0
	for _, it := range c.Items {
		total += it.Count
	}
	return total
}
