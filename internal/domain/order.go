package domain

import "time"

// Order is a normalized view of a past order from the commerce platform.
type Order struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	OrderNumber       int             `json:"order_number"`
	ProcessedAt       time.Time       `json:"processed_at"`
	FulfillmentStatus string          `json:"fulfillment_status"`
	FinancialStatus   string          `json:"financial_status"`
	TotalPrice        float64         `json:"total_price"`
	SubtotalPrice     float64         `json:"subtotal_price"`
	ShippingPrice     float64         `json:"shipping_price"`
	CurrencyCode      string          `json:"currency_code"`
	ShippingAddress   *Address        `json:"shipping_address,omitempty"`
	LineItems         []OrderLineItem `json:"line_items"`
}

// OrderLineItem is a single purchased line within an order.
type OrderLineItem struct {
	Title           string           `json:"title"`
	Quantity        int              `json:"quantity"`
	Price           float64          `json:"price"`
	CurrencyCode    string           `json:"currency_code"`
	VariantTitle    string           `json:"variant_title,omitempty"`
	Image           *string          `json:"image,omitempty"`
	ProductHandle   string           `json:"product_handle,omitempty"`
	SelectedOptions []SelectedOption `json:"selected_options,omitempty"`
}

// SelectedOption is a chosen variant option on a purchased line.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Address is a customer shipping address as returned by the platform.
type Address struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Address1  string `json:"address1,omitempty"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city,omitempty"`
	Province  string `json:"province,omitempty"`
	Country   string `json:"country,omitempty"`
	Zip       string `json:"zip,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
