package domain

// Product is the normalized storefront view of a catalog product. All
// presentation-ready fields are derived once at normalization time so the
// view layer never touches raw gateway shapes.
type Product struct {
	ID               string    `json:"id"`
	Handle           string    `json:"handle"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	DescriptionHTML  string    `json:"description_html,omitempty"`
	Price            float64   `json:"price"`
	CompareAtPrice   *float64  `json:"compare_at_price,omitempty"`
	CurrencyCode     string    `json:"currency_code"`
	Image            *string   `json:"image,omitempty"`
	Images           []string  `json:"images,omitempty"`
	Tags             []string  `json:"tags,omitempty"`
	ProductType      string    `json:"product_type,omitempty"`
	AvailableForSale bool      `json:"available_for_sale"`
	Variants         []Variant `json:"variants,omitempty"`
	Sizes            []string  `json:"sizes,omitempty"`
	Colors           []string  `json:"colors,omitempty"`
}

// Variant is a purchasable variation of a product.
type Variant struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	AvailableForSale bool     `json:"available_for_sale"`
	Price            float64  `json:"price"`
	CompareAtPrice   *float64 `json:"compare_at_price,omitempty"`
	Size             *string  `json:"size,omitempty"`
	Color            *string  `json:"color,omitempty"`
	Image            *string  `json:"image,omitempty"`
}

// OnSale reports whether the product carries a valid compare-at price.
func (p *Product) OnSale() bool {
	return p.CompareAtPrice != nil && *p.CompareAtPrice > p.Price
}

// Collection groups products under a merchandising handle.
type Collection struct {
	ID          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Products    []Product `json:"products,omitempty"`
}
