package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
	"github.com/Jaro-dev-studio/TriggerTs/internal/search"
)

// CatalogGateway is the slice of the commerce platform the catalog
// endpoints need.
type CatalogGateway interface {
	GetProducts(ctx context.Context, first int, sortKey string, reverse bool) ([]domain.Product, error)
	GetCollections(ctx context.Context, first int) ([]domain.Collection, error)
	GetCollectionProducts(ctx context.Context, handle string, first int, sortKey string, reverse bool) (*domain.Collection, error)
	GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error)
	SearchProducts(ctx context.Context, query string, first int) ([]domain.Product, error)
}

// CatalogHandler serves catalog and search endpoints. Gateway read
// failures degrade to empty result sets so the storefront keeps rendering
// when the platform is unreachable.
type CatalogHandler struct {
	gateway CatalogGateway
	suggest *search.Manager
	logger  *slog.Logger
}

// NewCatalogHandler creates a catalog HTTP handler.
func NewCatalogHandler(gateway CatalogGateway, suggest *search.Manager, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		gateway: gateway,
		suggest: suggest,
		logger:  logger,
	}
}

func listingParams(r *http.Request) (first int, sortKey string, reverse bool) {
	first, _ = strconv.Atoi(r.URL.Query().Get("first"))
	sortKey = r.URL.Query().Get("sort")
	reverse = r.URL.Query().Get("reverse") == "true"
	return first, sortKey, reverse
}

func (h *CatalogHandler) degradeToEmpty(r *http.Request, what string, err error) {
	h.logger.WarnContext(r.Context(), "catalog read degraded to empty results",
		slog.String("what", what),
		slog.String("error", err.Error()),
	)
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	first, sortKey, reverse := listingParams(r)

	products, err := h.gateway.GetProducts(r.Context(), first, sortKey, reverse)
	if err != nil {
		h.degradeToEmpty(r, "products", err)
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, response{Data: products})
}

// GetProduct handles GET /api/v1/products/{handle}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	product, err := h.gateway.GetProductByHandle(r.Context(), handle)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if product == nil {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "product not found"},
		})
		return
	}
	writeJSON(w, http.StatusOK, response{Data: product})
}

// ListCollections handles GET /api/v1/collections
func (h *CatalogHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	first, _ := strconv.Atoi(r.URL.Query().Get("first"))

	collections, err := h.gateway.GetCollections(r.Context(), first)
	if err != nil {
		h.degradeToEmpty(r, "collections", err)
		collections = []domain.Collection{}
	}
	writeJSON(w, http.StatusOK, response{Data: collections})
}

// GetCollection handles GET /api/v1/collections/{handle}
func (h *CatalogHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	first, sortKey, reverse := listingParams(r)

	collection, err := h.gateway.GetCollectionProducts(r.Context(), handle, first, sortKey, reverse)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if collection == nil {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "collection not found"},
		})
		return
	}
	writeJSON(w, http.StatusOK, response{Data: collection})
}

// Search handles GET /api/v1/search?q=&first=, the direct, synchronous
// search path.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	first, _ := strconv.Atoi(r.URL.Query().Get("first"))

	products, err := h.gateway.SearchProducts(r.Context(), query, first)
	if err != nil {
		h.degradeToEmpty(r, "search", err)
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, response{Data: products})
}

// SuggestQueryRequest is the JSON body for a search-as-you-type keystroke.
type SuggestQueryRequest struct {
	Query string `json:"query"`
}

// SetSuggestQuery handles POST /api/v1/search/suggest. It feeds the
// visitor's debounced search container.
func (h *CatalogHandler) SetSuggestQuery(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}

	var req SuggestQueryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	container := h.suggest.Get(visitorID)
	container.SetQuery(req.Query)
	writeJSON(w, http.StatusAccepted, response{Data: container.Snapshot()})
}

// GetSuggestions handles GET /api/v1/search/suggest. It returns the current
// snapshot of the visitor's debounced search.
func (h *CatalogHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		writeBadRequest(w, "X-Visitor-ID header is required")
		return
	}
	writeJSON(w, http.StatusOK, response{Data: h.suggest.Get(visitorID).Snapshot()})
}
