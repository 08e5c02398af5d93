package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
	"github.com/Jaro-dev-studio/TriggerTs/internal/shopify"
	"github.com/Jaro-dev-studio/TriggerTs/internal/storage"
	apperrors "github.com/Jaro-dev-studio/TriggerTs/pkg/errors"
)

// Gateway is the slice of the commerce platform the session store needs.
type Gateway interface {
	CustomerLogin(ctx context.Context, email, password string) (*domain.Session, string, error)
	CustomerCreate(ctx context.Context, input shopify.CustomerCreateInput) (*domain.Customer, string, error)
	CustomerLogout(ctx context.Context, token string) error
	GetCustomer(ctx context.Context, token string) (*domain.Customer, error)
	CustomerRecover(ctx context.Context, email string) (string, error)
	GetCustomerOrders(ctx context.Context, token string, first int) ([]domain.Order, error)
}

// Store holds one visitor's authentication state: the durable token pair
// plus the in-memory customer profile. The token and its expiry are always
// written and cleared together; an expired token is treated as absent.
type Store struct {
	mu        sync.Mutex
	visitorID string
	storage   storage.Store
	gateway   Gateway
	logger    *slog.Logger
	now       func() time.Time

	customer *domain.Customer
	session  *domain.Session
	loading  bool
}

// NewStore creates a session store for a visitor. Call Restore before
// serving requests so stale tokens are reconciled up front.
func NewStore(visitorID string, store storage.Store, gateway Gateway, logger *slog.Logger) *Store {
	return &Store{
		visitorID: visitorID,
		storage:   store,
		gateway:   gateway,
		logger:    logger,
		now:       time.Now,
	}
}

// Login exchanges credentials for a token, persists the token pair, and
// loads the customer profile. Credential failures come back in the result,
// not as an error.
func (s *Store) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	session, userErr, err := s.gateway.CustomerLogin(ctx, email, password)
	if err != nil {
		return domain.AuthResult{}, err
	}
	if userErr != "" {
		return domain.AuthResult{Success: false, Error: userErr}, nil
	}

	if err := s.persistSession(ctx, session); err != nil {
		return domain.AuthResult{}, err
	}

	customer, err := s.gateway.GetCustomer(ctx, session.AccessToken)
	if err != nil {
		s.logger.Warn("customer fetch after login failed",
			"visitor_id", s.visitorID, "error", err)
	}

	s.mu.Lock()
	s.session = session
	s.customer = customer
	s.mu.Unlock()

	return domain.AuthResult{Success: true}, nil
}

// Register creates the account and, on success, logs in with the same
// credentials: account creation alone yields no access token.
func (s *Store) Register(ctx context.Context, input shopify.CustomerCreateInput) (domain.AuthResult, error) {
	_, userErr, err := s.gateway.CustomerCreate(ctx, input)
	if err != nil {
		return domain.AuthResult{}, err
	}
	if userErr != "" {
		return domain.AuthResult{Success: false, Error: userErr}, nil
	}
	return s.Login(ctx, input.Email, input.Password)
}

// Logout revokes the token best-effort, then unconditionally clears the
// persisted pair and the in-memory state.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	session := s.session
	s.session = nil
	s.customer = nil
	s.mu.Unlock()

	if session != nil {
		if err := s.gateway.CustomerLogout(ctx, session.AccessToken); err != nil {
			s.logger.Warn("token revocation failed",
				"visitor_id", s.visitorID, "error", err)
		}
	}
	return s.clearSession(ctx)
}

// RecoverPassword triggers a recovery email. No session state changes.
func (s *Store) RecoverPassword(ctx context.Context, email string) (domain.AuthResult, error) {
	userErr, err := s.gateway.CustomerRecover(ctx, email)
	if err != nil {
		return domain.AuthResult{}, err
	}
	if userErr != "" {
		return domain.AuthResult{Success: false, Error: userErr}, nil
	}
	return domain.AuthResult{Success: true}, nil
}

// Restore reconciles persisted state on startup: a present, unexpired
// token is validated against the platform; anything else clears the pair
// and leaves the visitor unauthenticated.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	session, err := s.readSession(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	if !session.Valid(s.now()) {
		return s.clearSession(ctx)
	}

	customer, err := s.gateway.GetCustomer(ctx, session.AccessToken)
	if err != nil || customer == nil {
		if err != nil {
			s.logger.Warn("stored token validation failed",
				"visitor_id", s.visitorID, "error", err)
		}
		return s.clearSession(ctx)
	}

	s.mu.Lock()
	s.session = session
	s.customer = customer
	s.mu.Unlock()
	return nil
}

// Orders fetches the signed-in customer's order history.
func (s *Store) Orders(ctx context.Context, first int) ([]domain.Order, error) {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if session == nil {
		return nil, apperrors.Unauthorized("not signed in")
	}
	return s.gateway.GetCustomerOrders(ctx, session.AccessToken, first)
}

// Customer returns the in-memory profile, or nil when signed out.
func (s *Store) Customer() *domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

// IsAuthenticated reports whether a valid session is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.session.Valid(s.now())
}

// Token returns the held access token, or empty when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

// IsLoading reports whether a Restore is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) persistSession(ctx context.Context, session *domain.Session) error {
	if err := s.storage.Set(ctx, s.visitorID, storage.KeyCustomerToken, []byte(session.AccessToken)); err != nil {
		return err
	}
	return s.storage.Set(ctx, s.visitorID, storage.KeyTokenExpiry,
		[]byte(session.ExpiresAt.Format(time.RFC3339)))
}

func (s *Store) clearSession(ctx context.Context) error {
	return s.storage.Delete(ctx, s.visitorID, storage.KeyCustomerToken, storage.KeyTokenExpiry)
}

// readSession loads the persisted pair. A missing or unparsable half is
// treated as no session.
func (s *Store) readSession(ctx context.Context) (*domain.Session, error) {
	token, err := s.storage.Get(ctx, s.visitorID, storage.KeyCustomerToken)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	expiryRaw, err := s.storage.Get(ctx, s.visitorID, storage.KeyTokenExpiry)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Half a pair is as good as none; clean it up.
		return nil, s.clearSession(ctx)
	}
	if err != nil {
		return nil, err
	}

	expiresAt, err := time.Parse(time.RFC3339, string(expiryRaw))
	if err != nil {
		s.logger.Warn("discarding unparsable token expiry",
			"visitor_id", s.visitorID, "error", err)
		return nil, s.clearSession(ctx)
	}
	return &domain.Session{AccessToken: string(token), ExpiresAt: expiresAt}, nil
}
