package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
	"github.com/Jaro-dev-studio/TriggerTs/internal/shopify"
	"github.com/Jaro-dev-studio/TriggerTs/internal/storage"
	redisstore "github.com/Jaro-dev-studio/TriggerTs/internal/storage/redis"
	apperrors "github.com/Jaro-dev-studio/TriggerTs/pkg/errors"
)

// fakeGateway scripts platform behavior per test.
type fakeGateway struct {
	loginSession  *domain.Session
	loginUserErr  string
	loginErr      error
	createUserErr string
	customer      *domain.Customer
	customerErr   error
	recoverErr    string
	orders        []domain.Order
	logoutCalled  bool
	logoutErr     error
	loginCalls    int
}

func (g *fakeGateway) CustomerLogin(ctx context.Context, email, password string) (*domain.Session, string, error) {
	g.loginCalls++
	return g.loginSession, g.loginUserErr, g.loginErr
}

func (g *fakeGateway) CustomerCreate(ctx context.Context, input shopify.CustomerCreateInput) (*domain.Customer, string, error) {
	if g.createUserErr != "" {
		return nil, g.createUserErr, nil
	}
	return &domain.Customer{ID: "gid://customer/1", Email: input.Email}, "", nil
}

func (g *fakeGateway) CustomerLogout(ctx context.Context, token string) error {
	g.logoutCalled = true
	return g.logoutErr
}

func (g *fakeGateway) GetCustomer(ctx context.Context, token string) (*domain.Customer, error) {
	return g.customer, g.customerErr
}

func (g *fakeGateway) CustomerRecover(ctx context.Context, email string) (string, error) {
	return g.recoverErr, nil
}

func (g *fakeGateway) GetCustomerOrders(ctx context.Context, token string, first int) ([]domain.Order, error) {
	return g.orders, nil
}

func validSession() *domain.Session {
	return &domain.Session{AccessToken: "tok-123", ExpiresAt: time.Now().Add(24 * time.Hour)}
}

func setupStore(t *testing.T, gw *fakeGateway) (*Store, storage.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := redisstore.NewStore(client, 0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore("visitor-1", store, gw, logger), store
}

func TestStore_Login_PersistsBothKeys(t *testing.T) {
	gw := &fakeGateway{
		loginSession: validSession(),
		customer:     &domain.Customer{ID: "gid://customer/1", Email: "a@b.com"},
	}
	s, store := setupStore(t, gw)
	ctx := context.Background()

	result, err := s.Login(ctx, "a@b.com", "pw")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok-123", s.Token())
	require.NotNil(t, s.Customer())
	assert.Equal(t, "a@b.com", s.Customer().Email)

	tok, err := store.Get(ctx, "visitor-1", storage.KeyCustomerToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(tok))
	_, err = store.Get(ctx, "visitor-1", storage.KeyTokenExpiry)
	require.NoError(t, err)
}

func TestStore_Login_BadCredentials(t *testing.T) {
	gw := &fakeGateway{loginUserErr: "Unidentified customer"}
	s, store := setupStore(t, gw)
	ctx := context.Background()

	result, err := s.Login(ctx, "a@b.com", "wrong")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Unidentified customer", result.Error)
	assert.False(t, s.IsAuthenticated())

	_, err = store.Get(ctx, "visitor-1", storage.KeyCustomerToken)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStore_Register_AutoLogsIn(t *testing.T) {
	gw := &fakeGateway{
		loginSession: validSession(),
		customer:     &domain.Customer{ID: "gid://customer/1", Email: "new@b.com"},
	}
	s, _ := setupStore(t, gw)

	result, err := s.Register(context.Background(), shopify.CustomerCreateInput{
		Email: "new@b.com", Password: "pw",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, 1, gw.loginCalls)
}

func TestStore_Register_DuplicateEmail(t *testing.T) {
	gw := &fakeGateway{createUserErr: "Email has already been taken"}
	s, _ := setupStore(t, gw)

	result, err := s.Register(context.Background(), shopify.CustomerCreateInput{
		Email: "taken@b.com", Password: "pw",
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Email has already been taken", result.Error)
	assert.Equal(t, 0, gw.loginCalls)
}

func TestStore_Logout_ClearsBothKeysEvenWhenRevocationFails(t *testing.T) {
	gw := &fakeGateway{
		loginSession: validSession(),
		customer:     &domain.Customer{ID: "gid://customer/1"},
		logoutErr:    errors.New("platform down"),
	}
	s, store := setupStore(t, gw)
	ctx := context.Background()
	_, err := s.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))

	assert.True(t, gw.logoutCalled)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Customer())
	_, err = store.Get(ctx, "visitor-1", storage.KeyCustomerToken)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = store.Get(ctx, "visitor-1", storage.KeyTokenExpiry)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStore_RecoverPassword(t *testing.T) {
	s, _ := setupStore(t, &fakeGateway{})

	result, err := s.RecoverPassword(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, s.IsAuthenticated())
}

func TestStore_Restore_ValidToken(t *testing.T) {
	gw := &fakeGateway{customer: &domain.Customer{ID: "gid://customer/1", Email: "a@b.com"}}
	s, store := setupStore(t, gw)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyCustomerToken, []byte("tok-123")))
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyTokenExpiry,
		[]byte(time.Now().Add(time.Hour).Format(time.RFC3339))))

	require.NoError(t, s.Restore(ctx))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok-123", s.Token())
	assert.False(t, s.IsLoading())
}

func TestStore_Restore_ExpiredTokenClearsBothKeys(t *testing.T) {
	gw := &fakeGateway{customer: &domain.Customer{ID: "gid://customer/1"}}
	s, store := setupStore(t, gw)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyCustomerToken, []byte("tok-old")))
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyTokenExpiry,
		[]byte(time.Now().Add(-time.Hour).Format(time.RFC3339))))

	require.NoError(t, s.Restore(ctx))

	assert.False(t, s.IsAuthenticated())
	_, err := store.Get(ctx, "visitor-1", storage.KeyCustomerToken)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = store.Get(ctx, "visitor-1", storage.KeyTokenExpiry)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStore_Restore_InvalidTokenClearsBothKeys(t *testing.T) {
	// Token present and unexpired, but the platform no longer honors it.
	gw := &fakeGateway{customer: nil}
	s, store := setupStore(t, gw)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyCustomerToken, []byte("tok-revoked")))
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyTokenExpiry,
		[]byte(time.Now().Add(time.Hour).Format(time.RFC3339))))

	require.NoError(t, s.Restore(ctx))

	assert.False(t, s.IsAuthenticated())
	_, err := store.Get(ctx, "visitor-1", storage.KeyCustomerToken)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStore_Restore_NoStoredSession(t *testing.T) {
	s, _ := setupStore(t, &fakeGateway{})

	require.NoError(t, s.Restore(context.Background()))

	assert.False(t, s.IsAuthenticated())
}

func TestStore_Restore_UnparsableExpiryClearsPair(t *testing.T) {
	s, store := setupStore(t, &fakeGateway{})
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyCustomerToken, []byte("tok")))
	require.NoError(t, store.Set(ctx, "visitor-1", storage.KeyTokenExpiry, []byte("garbage")))

	require.NoError(t, s.Restore(ctx))

	assert.False(t, s.IsAuthenticated())
	_, err := store.Get(ctx, "visitor-1", storage.KeyCustomerToken)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStore_Orders_RequiresAuthentication(t *testing.T) {
	s, _ := setupStore(t, &fakeGateway{})

	_, err := s.Orders(context.Background(), 20)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestStore_Orders_Success(t *testing.T) {
	gw := &fakeGateway{
		loginSession: validSession(),
		customer:     &domain.Customer{ID: "gid://customer/1"},
		orders:       []domain.Order{{ID: "gid://order/1", Name: "#1001"}},
	}
	s, _ := setupStore(t, gw)
	ctx := context.Background()
	_, err := s.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	orders, err := s.Orders(ctx, 20)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "#1001", orders[0].Name)
}
