package http

import (
	"log/slog"
	"net/http"

	"github.com/Jaro-dev-studio/TriggerTs/internal/event"
	"github.com/Jaro-dev-studio/TriggerTs/internal/wishlist"
	"github.com/Jaro-dev-studio/TriggerTs/pkg/validator"
)

// WishlistHandler serves the visitor wishlist endpoints.
type WishlistHandler struct {
	lists    *wishlist.Manager
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistHandler creates a wishlist HTTP handler. producer may be nil
// when activity events are disabled.
func NewWishlistHandler(lists *wishlist.Manager, producer *event.Producer, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		lists:    lists,
		producer: producer,
		logger:   logger,
	}
}

// ToggleRequest is the JSON body for toggling a product in the wishlist.
type ToggleRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// wishlistView is the response shape for wishlist reads.
type wishlistView struct {
	Items    []string `json:"items"`
	Products any      `json:"products"`
	Loading  bool     `json:"loading"`
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	container, err := h.lists.Get(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: wishlistView{
		Items:    container.Items(),
		Products: container.Products(),
		Loading:  container.IsLoading(),
	}})
}

// Toggle handles POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	var req ToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	container, err := h.lists.Get(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	inWishlist, err := container.Toggle(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if h.producer != nil {
		if pubErr := h.producer.PublishWishlistUpdated(r.Context(), visitorID, req.ProductID, inWishlist, container.Items()); pubErr != nil {
			h.logger.WarnContext(r.Context(), "wishlist.updated publish failed",
				slog.String("visitor_id", visitorID), slog.String("error", pubErr.Error()))
		}
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{
		"product_id":  req.ProductID,
		"in_wishlist": inWishlist,
		"items":       container.Items(),
	}})
}

// Clear handles DELETE /api/v1/wishlist
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	container, err := h.lists.Get(r.Context(), visitorID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := container.Clear(r.Context()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "cleared"}})
}
