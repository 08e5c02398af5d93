package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
	apperrors "github.com/Jaro-dev-studio/TriggerTs/pkg/errors"
)

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the Shopify Storefront GraphQL API. All catalog reads go
// through the normalizer so callers only ever see domain view models.
type Client struct {
	endpoint string
	token    string
	http     HTTPDoer
	logger   *slog.Logger
}

// NewClient creates a Storefront API client. endpoint is the fully
// qualified graphql.json URL; token is the public Storefront access token.
func NewClient(endpoint, token string, doer HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     doer,
		logger:   logger,
	}
}

// execute posts a GraphQL document and decodes the data payload into out.
// Transport failures and GraphQL-level errors both surface as errors;
// customerUserErrors do not (they are part of the data payload).
func (c *Client) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return apperrors.GatewayUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.GatewayUnavailable(fmt.Errorf("storefront api status %d", resp.StatusCode))
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return apperrors.GatewayUnavailable(fmt.Errorf("graphql: %s", envelope.Errors[0].Message))
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("unmarshal graphql data: %w", err)
		}
	}
	return nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

func sessionFromToken(tok *customerAccessToken) (*domain.Session, error) {
	expiresAt, err := time.Parse(time.RFC3339, tok.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("parse token expiry: %w", err)
	}
	return &domain.Session{AccessToken: tok.AccessToken, ExpiresAt: expiresAt}, nil
}

// GetProducts fetches the product listing. sortKey follows the Storefront
// ProductSortKeys enum (BEST_SELLING, PRICE, CREATED_AT, TITLE).
func (c *Client) GetProducts(ctx context.Context, first int, sortKey string, reverse bool) ([]domain.Product, error) {
	if first <= 0 {
		first = 50
	}
	if sortKey == "" {
		sortKey = "BEST_SELLING"
	}

	var data struct {
		Products productConn `json:"products"`
	}
	if err := c.execute(ctx, queryGetProducts, map[string]any{
		"first":   first,
		"sortKey": sortKey,
		"reverse": reverse,
	}, &data); err != nil {
		return nil, err
	}
	return normalizeProducts(&data.Products), nil
}

// GetCollections fetches the collection listing, without per-collection
// products.
func (c *Client) GetCollections(ctx context.Context, first int) ([]domain.Collection, error) {
	if first <= 0 {
		first = 20
	}

	var data struct {
		Collections struct {
			Edges []struct {
				Node collectionNode `json:"node"`
			} `json:"edges"`
		} `json:"collections"`
	}
	if err := c.execute(ctx, queryGetCollections, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}

	out := make([]domain.Collection, 0, len(data.Collections.Edges))
	for _, e := range data.Collections.Edges {
		out = append(out, normalizeCollection(e.Node))
	}
	return out, nil
}

// GetCollectionProducts fetches one collection with its products. Returns
// nil when the handle does not exist.
func (c *Client) GetCollectionProducts(ctx context.Context, handle string, first int, sortKey string, reverse bool) (*domain.Collection, error) {
	if first <= 0 {
		first = 50
	}
	if sortKey == "" {
		sortKey = "BEST_SELLING"
	}

	var data struct {
		Collection *collectionNode `json:"collection"`
	}
	if err := c.execute(ctx, queryGetCollectionProducts, map[string]any{
		"handle":  handle,
		"first":   first,
		"sortKey": sortKey,
		"reverse": reverse,
	}, &data); err != nil {
		return nil, err
	}
	if data.Collection == nil {
		return nil, nil
	}
	collection := normalizeCollection(*data.Collection)
	return &collection, nil
}

// GetProductByHandle fetches one product with full detail. Returns nil when
// the handle does not exist.
func (c *Client) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	var data struct {
		Product *productNode `json:"product"`
	}
	if err := c.execute(ctx, queryGetProductByHandle, map[string]any{"handle": handle}, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, nil
	}
	product := normalizeProduct(*data.Product)
	return &product, nil
}

// GetProductsByIDs fetches products by ID in bulk. Unresolvable IDs are
// dropped silently; an empty ID list short-circuits without a network call.
func (c *Client) GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	var data struct {
		Nodes []*productNode `json:"nodes"`
	}
	if err := c.execute(ctx, queryGetProductsByIDs, map[string]any{"ids": ids}, &data); err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(data.Nodes))
	for _, n := range data.Nodes {
		if n == nil || n.ID == "" {
			continue
		}
		out = append(out, normalizeProduct(*n))
	}
	return out, nil
}

// SearchProducts runs a product text search. A blank query short-circuits
// to empty results without a network call.
func (c *Client) SearchProducts(ctx context.Context, query string, first int) ([]domain.Product, error) {
	if isBlank(query) {
		return []domain.Product{}, nil
	}
	if first <= 0 {
		first = 20
	}

	var data struct {
		Search productConn `json:"search"`
	}
	if err := c.execute(ctx, querySearchProducts, map[string]any{
		"query": query,
		"first": first,
	}, &data); err != nil {
		return nil, err
	}
	return normalizeProducts(&data.Search), nil
}

// CustomerLogin exchanges credentials for an access token. Credential
// failures come back as a message in the second return value, not an error.
func (c *Client) CustomerLogin(ctx context.Context, email, password string) (*domain.Session, string, error) {
	var data struct {
		CustomerAccessTokenCreate struct {
			CustomerAccessToken *customerAccessToken `json:"customerAccessToken"`
			CustomerUserErrors  []customerUserError  `json:"customerUserErrors"`
		} `json:"customerAccessTokenCreate"`
	}
	if err := c.execute(ctx, mutationCustomerAccessTokenCreate, map[string]any{
		"input": map[string]any{"email": email, "password": password},
	}, &data); err != nil {
		return nil, "", err
	}

	if len(data.CustomerAccessTokenCreate.CustomerUserErrors) > 0 {
		return nil, data.CustomerAccessTokenCreate.CustomerUserErrors[0].Message, nil
	}
	tok := data.CustomerAccessTokenCreate.CustomerAccessToken
	if tok == nil {
		return nil, "failed to create access token", nil
	}

	session, err := sessionFromToken(tok)
	if err != nil {
		return nil, "", err
	}
	return session, "", nil
}

// CustomerCreateInput is the registration payload forwarded to the platform.
type CustomerCreateInput struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// CustomerCreate registers a new customer account. Creation yields a
// customer record but no access token. Domain failures (duplicate email,
// weak password) come back as a message, not an error.
func (c *Client) CustomerCreate(ctx context.Context, input CustomerCreateInput) (*domain.Customer, string, error) {
	var data struct {
		CustomerCreate struct {
			Customer           *customerNode       `json:"customer"`
			CustomerUserErrors []customerUserError `json:"customerUserErrors"`
		} `json:"customerCreate"`
	}
	if err := c.execute(ctx, mutationCustomerCreate, map[string]any{"input": input}, &data); err != nil {
		return nil, "", err
	}

	if len(data.CustomerCreate.CustomerUserErrors) > 0 {
		return nil, data.CustomerCreate.CustomerUserErrors[0].Message, nil
	}
	if data.CustomerCreate.Customer == nil {
		return nil, "failed to create customer", nil
	}
	customer := normalizeCustomer(*data.CustomerCreate.Customer)
	return &customer, "", nil
}

// CustomerLogout revokes an access token server-side. Callers treat
// failures as best-effort.
func (c *Client) CustomerLogout(ctx context.Context, token string) error {
	return c.execute(ctx, mutationCustomerAccessTokenDelete, map[string]any{
		"customerAccessToken": token,
	}, nil)
}

// GetCustomer fetches the profile behind an access token. Returns nil when
// the token is invalid or revoked.
func (c *Client) GetCustomer(ctx context.Context, token string) (*domain.Customer, error) {
	var data struct {
		Customer *customerNode `json:"customer"`
	}
	if err := c.execute(ctx, queryGetCustomer, map[string]any{
		"customerAccessToken": token,
	}, &data); err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return nil, nil
	}
	customer := normalizeCustomer(*data.Customer)
	return &customer, nil
}

// CustomerRecover triggers a password recovery email. Domain failures come
// back as a message, not an error.
func (c *Client) CustomerRecover(ctx context.Context, email string) (string, error) {
	var data struct {
		CustomerRecover struct {
			CustomerUserErrors []customerUserError `json:"customerUserErrors"`
		} `json:"customerRecover"`
	}
	if err := c.execute(ctx, mutationCustomerRecover, map[string]any{"email": email}, &data); err != nil {
		return "", err
	}
	if len(data.CustomerRecover.CustomerUserErrors) > 0 {
		return data.CustomerRecover.CustomerUserErrors[0].Message, nil
	}
	return "", nil
}

// GetCustomerOrders fetches the customer's order history, newest first.
func (c *Client) GetCustomerOrders(ctx context.Context, token string, first int) ([]domain.Order, error) {
	if first <= 0 {
		first = 20
	}

	var data struct {
		Customer *struct {
			Orders struct {
				Edges []struct {
					Node orderNode `json:"node"`
				} `json:"edges"`
			} `json:"orders"`
		} `json:"customer"`
	}
	if err := c.execute(ctx, queryGetCustomerOrders, map[string]any{
		"customerAccessToken": token,
		"first":               first,
	}, &data); err != nil {
		return nil, err
	}
	if data.Customer == nil {
		return []domain.Order{}, nil
	}

	out := make([]domain.Order, 0, len(data.Customer.Orders.Edges))
	for _, e := range data.Customer.Orders.Edges {
		out = append(out, normalizeOrder(e.Node))
	}
	return out, nil
}
