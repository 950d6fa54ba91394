package models

// CartItem is one line of the in-progress selection. Composite identity for
// merging is (Type, ItemID); ID only names the line itself.
type CartItem struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"` // product or service
	ItemID     string  `json:"itemId"`
	Name       string  `json:"name"`
	Image      string  `json:"image,omitempty"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	ProviderID string  `json:"providerId,omitempty"`
	Category   string  `json:"category,omitempty"`
}

// Subtotal is the line total at the unit price captured when added.
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}
