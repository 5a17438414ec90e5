// internal/domain/cart/entity.go
package cart

import "time"

// Item is one line in the session cart
type Item struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	ImageKeyword string  `json:"image_keyword"`
	Quantity     int     `json:"quantity"`
}

// Cart is the per-session shopping cart. Totals are derived fields,
// recomputed on every mutation and read.
type Cart struct {
	SessionID string    `json:"session_id"`
	Items     []Item    `json:"items"`
	ItemCount int       `json:"item_count"`
	Total     float64   `json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}

// calculateTotals recomputes the derived count and amount fields
func (c *Cart) calculateTotals() {
	count := 0
	total := 0.0
	for _, item := range c.Items {
		count += item.Quantity
		total += item.Price * float64(item.Quantity)
	}
	c.ItemCount = count
	c.Total = total
}

// IsEmpty reports whether the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
