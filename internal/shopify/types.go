package shopify

import "encoding/json"

// Raw Storefront API response shapes. The GraphQL connection pattern wraps
// every list in edges/node pairs; the normalizer flattens these into the
// domain view models.

type moneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type imageNode struct {
	URL     string  `json:"url"`
	AltText *string `json:"altText"`
}

type selectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type variantNode struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale *bool            `json:"availableForSale"`
	SelectedOptions  []selectedOption `json:"selectedOptions"`
	Price            *moneyV2         `json:"price"`
	CompareAtPrice   *moneyV2         `json:"compareAtPrice"`
	Image            *imageNode       `json:"image"`
}

type priceRange struct {
	MinVariantPrice *moneyV2 `json:"minVariantPrice"`
	MaxVariantPrice *moneyV2 `json:"maxVariantPrice"`
}

type productNode struct {
	ID                  string       `json:"id"`
	Handle              string       `json:"handle"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	DescriptionHTML     string       `json:"descriptionHtml"`
	Tags                []string     `json:"tags"`
	ProductType         string       `json:"productType"`
	AvailableForSale    *bool        `json:"availableForSale"`
	FeaturedImage       *imageNode   `json:"featuredImage"`
	Images              *imageConn   `json:"images"`
	Variants            *variantConn `json:"variants"`
	PriceRange          *priceRange  `json:"priceRange"`
	CompareAtPriceRange *priceRange  `json:"compareAtPriceRange"`
}

type imageConn struct {
	Edges []struct {
		Node imageNode `json:"node"`
	} `json:"edges"`
}

type variantConn struct {
	Edges []struct {
		Node variantNode `json:"node"`
	} `json:"edges"`
}

type productConn struct {
	Edges []struct {
		Node productNode `json:"node"`
	} `json:"edges"`
}

type collectionNode struct {
	ID          string       `json:"id"`
	Handle      string       `json:"handle"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       *imageNode   `json:"image"`
	Products    *productConn `json:"products"`
}

type customerUserError struct {
	Code    *string  `json:"code"`
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type customerAccessToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}

type customerNode struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

type addressNode struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Address1  *string `json:"address1"`
	Address2  *string `json:"address2"`
	City      *string `json:"city"`
	Province  *string `json:"province"`
	Country   *string `json:"country"`
	Zip       *string `json:"zip"`
	Phone     *string `json:"phone"`
}

type orderLineItemNode struct {
	Title              string   `json:"title"`
	Quantity           int      `json:"quantity"`
	OriginalTotalPrice *moneyV2 `json:"originalTotalPrice"`
	Variant            *struct {
		ID              string           `json:"id"`
		Title           string           `json:"title"`
		Image           *imageNode       `json:"image"`
		SelectedOptions []selectedOption `json:"selectedOptions"`
		Product         *struct {
			Handle string `json:"handle"`
		} `json:"product"`
	} `json:"variant"`
}

type orderNode struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	OrderNumber        int          `json:"orderNumber"`
	ProcessedAt        string       `json:"processedAt"`
	FulfillmentStatus  string       `json:"fulfillmentStatus"`
	FinancialStatus    string       `json:"financialStatus"`
	TotalPrice         *moneyV2     `json:"totalPrice"`
	SubtotalPrice      *moneyV2     `json:"subtotalPrice"`
	TotalShippingPrice *moneyV2     `json:"totalShippingPrice"`
	ShippingAddress    *addressNode `json:"shippingAddress"`
	LineItems          struct {
		Edges []struct {
			Node orderLineItemNode `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

// graphQLRequest is the POST body for the Storefront endpoint.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLResponse is the standard {data, errors} envelope.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}
