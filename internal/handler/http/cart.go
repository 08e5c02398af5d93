package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jaro-dev-studio/TriggerTs/internal/cart"
	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
	"github.com/Jaro-dev-studio/TriggerTs/internal/event"
	"github.com/Jaro-dev-studio/TriggerTs/pkg/validator"
)

// CartHandler serves the visitor cart endpoints.
type CartHandler struct {
	carts    *cart.Manager
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartHandler creates a cart HTTP handler. producer may be nil when
// activity events are disabled.
func NewCartHandler(carts *cart.Manager, producer *event.Producer, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		producer: producer,
		logger:   logger,
	}
}

// AddItemRequest is the JSON body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Title     string  `json:"title" validate:"required,min=1,max=500"`
	Price     float64 `json:"price" validate:"gte=0"`
	Size      string  `json:"size"`
	Image     *string `json:"image"`
}

// UpdateQuantityRequest is the JSON body for setting a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}
	writeJSON(w, http.StatusOK, response{Data: h.carts.Get(visitorID).Snapshot()})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	snap := h.carts.Get(visitorID).AddItem(domain.CartItem{
		ProductID: req.ProductID,
		Title:     req.Title,
		Price:     req.Price,
		Size:      req.Size,
		Image:     req.Image,
	})
	h.publishUpdated(r, visitorID, snap)

	writeJSON(w, http.StatusOK, response{Data: snap})
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productID}?size=
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	productID := chi.URLParam(r, "productID")
	size := r.URL.Query().Get("size")

	var req UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	snap := h.carts.Get(visitorID).UpdateQuantity(productID, size, req.Quantity)
	h.publishUpdated(r, visitorID, snap)

	writeJSON(w, http.StatusOK, response{Data: snap})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}?size=
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	productID := chi.URLParam(r, "productID")
	size := r.URL.Query().Get("size")

	snap := h.carts.Get(visitorID).RemoveItem(productID, size)
	h.publishUpdated(r, visitorID, snap)

	writeJSON(w, http.StatusOK, response{Data: snap})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	snap := h.carts.Get(visitorID).Clear()
	if h.producer != nil {
		if err := h.producer.PublishCartCleared(r.Context(), visitorID); err != nil {
			h.logger.WarnContext(r.Context(), "cart.cleared publish failed",
				slog.String("visitor_id", visitorID), slog.String("error", err.Error()))
		}
	}

	writeJSON(w, http.StatusOK, response{Data: snap})
}

func (h *CartHandler) publishUpdated(r *http.Request, visitorID string, snap domain.CartSnapshot) {
	if h.producer == nil {
		return
	}
	if err := h.producer.PublishCartUpdated(r.Context(), visitorID, snap); err != nil {
		h.logger.WarnContext(r.Context(), "cart.updated publish failed",
			slog.String("visitor_id", visitorID), slog.String("error", err.Error()))
	}
}
