package models

import "github.com/shopspring/decimal"

// Cart maps item IDs to requested quantities for one browsing session.
// Entries always carry quantity > 0; setting an entry to zero removes it.
type Cart map[string]int

// NewCart returns an empty cart.
func NewCart() Cart {
	return make(Cart)
}

// Quantity returns the requested quantity for the item, zero when absent.
func (c Cart) Quantity(itemID string) int {
	return c[itemID]
}

// Set overwrites the quantity for the item. Quantities below one delete
// the entry so zero-quantity lines never persist.
func (c Cart) Set(itemID string, quantity int) {
	if quantity <= 0 {
		delete(c, itemID)
		return
	}
	c[itemID] = quantity
}

// Remove deletes the entry if present.
func (c Cart) Remove(itemID string) {
	delete(c, itemID)
}

// Count returns the total number of units across all lines.
func (c Cart) Count() int {
	total := 0
	for _, q := range c {
		total += q
	}
	return total
}

// CartLine is one cart entry merged with live item data.
// Available is the stock headroom left after this cart's quantity.
type CartLine struct {
	ItemID     string          `json:"item_id"`
	Title      string          `json:"title"`
	Size       string          `json:"size"`
	AgeRange   string          `json:"age_range"`
	Quantity   int             `json:"quantity"`
	DailyPrice decimal.Decimal `json:"daily_price"`
	Available  int             `json:"available"`
}

// CartView is the full cart as returned to the client.
type CartView struct {
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
}
