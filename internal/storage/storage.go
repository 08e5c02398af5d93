package storage

import "context"

// Store is durable per-visitor key/value storage. Values are opaque bytes;
// callers own the encoding. Keys are logical names scoped to a visitor, so
// two visitors never see each other's entries.
type Store interface {
	// Get retrieves the value stored under the visitor's key. Returns an
	// error satisfying errors.Is(err, apperrors.ErrNotFound) when absent.
	Get(ctx context.Context, visitorID, key string) ([]byte, error)

	// Set stores the value under the visitor's key, overwriting any
	// existing value.
	Set(ctx context.Context, visitorID, key string, value []byte) error

	// Delete removes the given keys for the visitor. Missing keys are not
	// an error.
	Delete(ctx context.Context, visitorID string, keys ...string) error
}

// Well-known logical keys. The wishlist and session keys are deliberately
// distinct so clearing a session never touches the wishlist.
const (
	KeyWishlist      = "triggerTs_wishlist"
	KeyCustomerToken = "shopify_customer_token"
	KeyTokenExpiry   = "shopify_customer_token_expiry"
)
