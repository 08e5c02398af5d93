package shopify

import (
	"strconv"
	"strings"
	"time"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
)

// parseAmount converts a Storefront money amount to a float. Malformed or
// empty amounts normalize to zero rather than erroring.
func parseAmount(m *moneyV2) float64 {
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m.Amount, 64)
	if err != nil {
		return 0
	}
	return v
}

func currencyOf(m *moneyV2, fallback string) string {
	if m == nil || m.CurrencyCode == "" {
		return fallback
	}
	return m.CurrencyCode
}

// optionValue returns the value of the named selected option, matched
// case-insensitively, or nil when the variant does not carry it.
func optionValue(opts []selectedOption, name string) *string {
	for _, o := range opts {
		if strings.EqualFold(o.Name, name) {
			v := o.Value
			return &v
		}
	}
	return nil
}

// normalizeProduct flattens a raw Storefront product into the domain view
// model. It is pure and total: missing optional fields become zero values,
// never errors, and the same input always yields the same output.
func normalizeProduct(raw productNode) domain.Product {
	var variants []variantNode
	if raw.Variants != nil {
		for _, e := range raw.Variants.Edges {
			variants = append(variants, e.Node)
		}
	}

	// Sizes and colors are the deduplicated union across variants, in
	// first-seen order.
	var sizes, colors []string
	seenSize := map[string]bool{}
	seenColor := map[string]bool{}
	for _, v := range variants {
		if s := optionValue(v.SelectedOptions, "size"); s != nil && !seenSize[*s] {
			seenSize[*s] = true
			sizes = append(sizes, *s)
		}
		if c := optionValue(v.SelectedOptions, "color"); c != nil && !seenColor[*c] {
			seenColor[*c] = true
			colors = append(colors, *c)
		}
	}

	var minPrice float64
	currency := "USD"
	if raw.PriceRange != nil {
		minPrice = parseAmount(raw.PriceRange.MinVariantPrice)
		currency = currencyOf(raw.PriceRange.MinVariantPrice, currency)
	}

	// A compare-at price is only meaningful when it exceeds the selling
	// price; anything else is dropped.
	var compareAt *float64
	if raw.CompareAtPriceRange != nil && raw.CompareAtPriceRange.MinVariantPrice != nil {
		if v := parseAmount(raw.CompareAtPriceRange.MinVariantPrice); v > minPrice {
			compareAt = &v
		}
	}

	var image *string
	if raw.FeaturedImage != nil {
		u := raw.FeaturedImage.URL
		image = &u
	}
	var images []string
	if raw.Images != nil {
		for _, e := range raw.Images.Edges {
			images = append(images, e.Node.URL)
		}
	}

	available := true
	if raw.AvailableForSale != nil {
		available = *raw.AvailableForSale
	}

	domainVariants := make([]domain.Variant, 0, len(variants))
	for _, v := range variants {
		dv := domain.Variant{
			ID:               v.ID,
			Title:            v.Title,
			AvailableForSale: true,
			Price:            minPrice,
			Size:             optionValue(v.SelectedOptions, "size"),
			Color:            optionValue(v.SelectedOptions, "color"),
		}
		if v.AvailableForSale != nil {
			dv.AvailableForSale = *v.AvailableForSale
		}
		if v.Price != nil {
			dv.Price = parseAmount(v.Price)
		}
		if v.CompareAtPrice != nil {
			p := parseAmount(v.CompareAtPrice)
			dv.CompareAtPrice = &p
		}
		if v.Image != nil {
			u := v.Image.URL
			dv.Image = &u
		}
		domainVariants = append(domainVariants, dv)
	}

	return domain.Product{
		ID:               raw.ID,
		Handle:           raw.Handle,
		Title:            raw.Title,
		Description:      raw.Description,
		DescriptionHTML:  raw.DescriptionHTML,
		Price:            minPrice,
		CompareAtPrice:   compareAt,
		CurrencyCode:     currency,
		Image:            image,
		Images:           images,
		Tags:             raw.Tags,
		ProductType:      raw.ProductType,
		AvailableForSale: available,
		Variants:         domainVariants,
		Sizes:            sizes,
		Colors:           colors,
	}
}

func normalizeProducts(conn *productConn) []domain.Product {
	if conn == nil {
		return []domain.Product{}
	}
	out := make([]domain.Product, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		out = append(out, normalizeProduct(e.Node))
	}
	return out
}

func normalizeCollection(raw collectionNode) domain.Collection {
	c := domain.Collection{
		ID:          raw.ID,
		Handle:      raw.Handle,
		Title:       raw.Title,
		Description: raw.Description,
	}
	if raw.Image != nil {
		u := raw.Image.URL
		c.Image = &u
	}
	c.Products = normalizeProducts(raw.Products)
	return c
}

func normalizeCustomer(raw customerNode) domain.Customer {
	return domain.Customer{
		ID:        raw.ID,
		Email:     raw.Email,
		FirstName: raw.FirstName,
		LastName:  raw.LastName,
		Phone:     raw.Phone,
	}
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func normalizeOrder(raw orderNode) domain.Order {
	processedAt, _ := time.Parse(time.RFC3339, raw.ProcessedAt)

	o := domain.Order{
		ID:                raw.ID,
		Name:              raw.Name,
		OrderNumber:       raw.OrderNumber,
		ProcessedAt:       processedAt,
		FulfillmentStatus: raw.FulfillmentStatus,
		FinancialStatus:   raw.FinancialStatus,
		TotalPrice:        parseAmount(raw.TotalPrice),
		SubtotalPrice:     parseAmount(raw.SubtotalPrice),
		ShippingPrice:     parseAmount(raw.TotalShippingPrice),
		CurrencyCode:      currencyOf(raw.TotalPrice, "USD"),
	}

	if a := raw.ShippingAddress; a != nil {
		o.ShippingAddress = &domain.Address{
			FirstName: strOrEmpty(a.FirstName),
			LastName:  strOrEmpty(a.LastName),
			Address1:  strOrEmpty(a.Address1),
			Address2:  strOrEmpty(a.Address2),
			City:      strOrEmpty(a.City),
			Province:  strOrEmpty(a.Province),
			Country:   strOrEmpty(a.Country),
			Zip:       strOrEmpty(a.Zip),
			Phone:     strOrEmpty(a.Phone),
		}
	}

	o.LineItems = make([]domain.OrderLineItem, 0, len(raw.LineItems.Edges))
	for _, e := range raw.LineItems.Edges {
		item := e.Node
		li := domain.OrderLineItem{
			Title:        item.Title,
			Quantity:     item.Quantity,
			Price:        parseAmount(item.OriginalTotalPrice),
			CurrencyCode: currencyOf(item.OriginalTotalPrice, o.CurrencyCode),
		}
		if v := item.Variant; v != nil {
			li.VariantTitle = v.Title
			if v.Image != nil {
				u := v.Image.URL
				li.Image = &u
			}
			if v.Product != nil {
				li.ProductHandle = v.Product.Handle
			}
			for _, opt := range v.SelectedOptions {
				li.SelectedOptions = append(li.SelectedOptions, domain.SelectedOption{
					Name:  opt.Name,
					Value: opt.Value,
				})
			}
		}
		o.LineItems = append(o.LineItems, li)
	}
	return o
}
