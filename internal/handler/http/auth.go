package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Jaro-dev-studio/TriggerTs/internal/event"
	"github.com/Jaro-dev-studio/TriggerTs/internal/session"
	"github.com/Jaro-dev-studio/TriggerTs/internal/shopify"
	"github.com/Jaro-dev-studio/TriggerTs/pkg/validator"
)

// AuthHandler serves the customer authentication and account endpoints.
// Credential failures are payload-level ({success:false, error}), never
// HTTP errors; only infrastructure failures map to error statuses.
type AuthHandler struct {
	sessions *session.Manager
	producer *event.Producer
	logger   *slog.Logger
}

// NewAuthHandler creates an auth HTTP handler. producer may be nil when
// activity events are disabled.
func NewAuthHandler(sessions *session.Manager, producer *event.Producer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		producer: producer,
		logger:   logger,
	}
}

// LoginRequest is the JSON body for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the JSON body for creating an account.
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=5"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// RecoverRequest is the JSON body for requesting a password reset email.
type RecoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// authView is the response shape for auth operations.
type authView struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Customer any    `json:"customer,omitempty"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	store, err := h.sessions.Get(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := store.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusOK, response{Data: authView{Success: false, Error: result.Error}})
		return
	}

	if h.producer != nil && store.Customer() != nil {
		if pubErr := h.producer.PublishCustomerSignedIn(r.Context(), visitorID, store.Customer().ID); pubErr != nil {
			h.logger.WarnContext(r.Context(), "customer.signed_in publish failed",
				slog.String("visitor_id", visitorID), slog.String("error", pubErr.Error()))
		}
	}

	writeJSON(w, http.StatusOK, response{Data: authView{Success: true, Customer: store.Customer()}})
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	store, err := h.sessions.Get(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := store.Register(r.Context(), shopify.CustomerCreateInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusOK, response{Data: authView{Success: false, Error: result.Error}})
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: authView{Success: true, Customer: store.Customer()}})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	store, err := h.sessions.Get(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := store.Logout(r.Context()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if h.producer != nil {
		if pubErr := h.producer.PublishCustomerSignedOut(r.Context(), visitorID); pubErr != nil {
			h.logger.WarnContext(r.Context(), "customer.signed_out publish failed",
				slog.String("visitor_id", visitorID), slog.String("error", pubErr.Error()))
		}
	}

	writeJSON(w, http.StatusOK, response{Data: authView{Success: true}})
}

// Recover handles POST /api/v1/auth/recover
func (h *AuthHandler) Recover(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	var req RecoverRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	store, err := h.sessions.Get(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := store.RecoverPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: authView{Success: result.Success, Error: result.Error}})
}

// GetAccount handles GET /api/v1/account
func (h *AuthHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	store, err := h.sessions.Get(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if !store.IsAuthenticated() {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHORIZED", Message: "not signed in"},
		})
		return
	}
	writeJSON(w, http.StatusOK, response{Data: store.Customer()})
}

// GetOrders handles GET /api/v1/account/orders
func (h *AuthHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	store, err := h.sessions.Get(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	first, _ := strconv.Atoi(r.URL.Query().Get("first"))
	orders, err := store.Orders(r.Context(), first)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: orders})
}
