package domain

// CartLine is a single line in a visitor's cart. Lines are keyed by the
// (ProductID, Size) pair: adding the same product in the same size merges
// into one line, a different size opens a new line.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Image     *string `json:"image,omitempty"`
}

// LineTotal returns the extended price of the line.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartItem is the caller-supplied payload for adding a product to the cart.
// Quantity is implicit: every add contributes exactly one unit.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Image     *string `json:"image,omitempty"`
}

// CartSnapshot is a point-in-time view of a cart returned to callers.
type CartSnapshot struct {
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"item_count"`
	Subtotal  float64    `json:"subtotal"`
}
