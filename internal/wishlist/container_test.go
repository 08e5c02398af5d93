package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
	"github.com/Jaro-dev-studio/TriggerTs/internal/storage"
	redisstore "github.com/Jaro-dev-studio/TriggerTs/internal/storage/redis"
)

// stubResolver returns products named after the requested IDs and records
// every call.
type stubResolver struct {
	mu    sync.Mutex
	calls [][]string
	delay time.Duration
	err   error
}

func (s *stubResolver) GetProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	s.mu.Lock()
	s.calls = append(s.calls, append([]string(nil), ids...))
	s.mu.Unlock()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Product{ID: id, Title: "Product " + id})
	}
	return out, nil
}

func (s *stubResolver) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func setupContainer(t *testing.T) (*Container, storage.Store, *stubResolver) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := redisstore.NewStore(client, 0)
	resolver := &stubResolver{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewContainer("visitor-1", store, resolver, logger), store, resolver
}

func TestContainer_Hydrate_EmptyStore(t *testing.T) {
	c, _, resolver := setupContainer(t)

	require.NoError(t, c.Hydrate(context.Background()))

	assert.Empty(t, c.Items())
	assert.Equal(t, PhaseResolved, c.CurrentPhase())
	assert.Equal(t, 0, resolver.callCount(), "empty set must not hit the network")
}

func TestContainer_Hydrate_ExistingSet(t *testing.T) {
	c, store, _ := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyWishlist, []byte(`["gid://1","gid://2"]`)))

	require.NoError(t, c.Hydrate(ctx))

	assert.Equal(t, []string{"gid://1", "gid://2"}, c.Items())
	require.Len(t, c.Products(), 2)
	assert.Equal(t, "gid://1", c.Products()[0].ID)
}

func TestContainer_Hydrate_MalformedDataBecomesEmptySet(t *testing.T) {
	c, store, _ := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyWishlist, []byte(`{"not":"an array"}`)))

	require.NoError(t, c.Hydrate(ctx))

	assert.Empty(t, c.Items())
}

func TestContainer_Hydrate_DeduplicatesStoredIDs(t *testing.T) {
	c, store, _ := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyWishlist, []byte(`["a","b","a"]`)))

	require.NoError(t, c.Hydrate(ctx))

	assert.Equal(t, []string{"a", "b"}, c.Items())
}

func TestContainer_Toggle_AddThenRemove(t *testing.T) {
	c, _, _ := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, c.Hydrate(ctx))

	present, err := c.Toggle(ctx, "gid://1")
	require.NoError(t, err)
	assert.True(t, present)
	assert.True(t, c.IsInWishlist("gid://1"))

	present, err = c.Toggle(ctx, "gid://1")
	require.NoError(t, err)
	assert.False(t, present)
	assert.False(t, c.IsInWishlist("gid://1"))
	assert.Empty(t, c.Items())
}

func TestContainer_Toggle_PersistsImmediately(t *testing.T) {
	c, store, _ := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, c.Hydrate(ctx))

	_, err := c.Toggle(ctx, "gid://1")
	require.NoError(t, err)
	_, err = c.Toggle(ctx, "gid://2")
	require.NoError(t, err)

	data, err := store.Get(ctx, "visitor-1", storage.KeyWishlist)
	require.NoError(t, err)
	var ids []string
	require.NoError(t, json.Unmarshal(data, &ids))
	assert.Equal(t, []string{"gid://1", "gid://2"}, ids)
}

func TestContainer_Toggle_NeverDuplicates(t *testing.T) {
	c, _, _ := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, c.Hydrate(ctx))

	for i := 0; i < 5; i++ {
		_, err := c.Toggle(ctx, "gid://1")
		require.NoError(t, err)
	}

	// Odd toggle count leaves exactly one occurrence.
	assert.Equal(t, []string{"gid://1"}, c.Items())
}

func TestContainer_RoundTrip(t *testing.T) {
	c, store, _ := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, c.Hydrate(ctx))
	_, err := c.Toggle(ctx, "gid://1")
	require.NoError(t, err)
	_, err = c.Toggle(ctx, "gid://2")
	require.NoError(t, err)

	// A fresh container hydrating from the same store sees the same set.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fresh := NewContainer("visitor-1", store, &stubResolver{}, logger)
	require.NoError(t, fresh.Hydrate(ctx))

	assert.Equal(t, c.Items(), fresh.Items())
}

func TestContainer_Clear(t *testing.T) {
	c, store, _ := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, c.Hydrate(ctx))
	_, err := c.Toggle(ctx, "gid://1")
	require.NoError(t, err)

	require.NoError(t, c.Clear(ctx))

	assert.Empty(t, c.Items())
	assert.Empty(t, c.Products())
	data, err := store.Get(ctx, "visitor-1", storage.KeyWishlist)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

// failingStore wraps a real store and fails every write.
type failingStore struct {
	storage.Store
	setErr error
}

func (f *failingStore) Set(ctx context.Context, visitorID, key string, value []byte) error {
	return f.setErr
}

func TestContainer_Hydrate_ResolverDownKeepsSet(t *testing.T) {
	c, store, resolver := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyWishlist, []byte(`["gid://1","gid://2"]`)))
	resolver.err = errors.New("gateway unreachable")

	require.NoError(t, c.Hydrate(ctx))

	assert.Equal(t, []string{"gid://1", "gid://2"}, c.Items())
	assert.Empty(t, c.Products())
	assert.False(t, c.IsLoading())
	assert.Equal(t, PhaseReady, c.CurrentPhase())
}

func TestContainer_Hydrate_ResolverRecoversOnNextToggle(t *testing.T) {
	c, store, resolver := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyWishlist, []byte(`["gid://1"]`)))
	resolver.err = errors.New("gateway unreachable")
	require.NoError(t, c.Hydrate(ctx))

	resolver.err = nil
	_, err := c.Toggle(ctx, "gid://2")
	require.NoError(t, err)

	assert.Len(t, c.Products(), 2)
	assert.Equal(t, PhaseResolved, c.CurrentPhase())
}

func TestContainer_Toggle_PersistFailureRollsBack(t *testing.T) {
	c, store, _ := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyWishlist, []byte(`["gid://1"]`)))
	require.NoError(t, c.Hydrate(ctx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	broken := NewContainer("visitor-1", &failingStore{Store: store, setErr: errors.New("redis down")}, &stubResolver{}, logger)
	require.NoError(t, broken.Hydrate(ctx))

	_, err := broken.Toggle(ctx, "gid://2")
	require.Error(t, err)

	// Memory still matches what is durably stored.
	assert.Equal(t, []string{"gid://1"}, broken.Items())
	assert.False(t, broken.IsInWishlist("gid://2"))

	_, err = broken.Toggle(ctx, "gid://1")
	require.Error(t, err)
	assert.True(t, broken.IsInWishlist("gid://1"))
}

func TestContainer_ResolveReplacesWholesale(t *testing.T) {
	c, _, resolver := setupContainer(t)
	ctx := context.Background()
	require.NoError(t, c.Hydrate(ctx))

	_, err := c.Toggle(ctx, "gid://1")
	require.NoError(t, err)
	_, err = c.Toggle(ctx, "gid://2")
	require.NoError(t, err)
	_, err = c.Toggle(ctx, "gid://1")
	require.NoError(t, err)

	products := c.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "gid://2", products[0].ID)
	assert.GreaterOrEqual(t, resolver.callCount(), 2)
}
