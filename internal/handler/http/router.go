package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Jaro-dev-studio/TriggerTs/internal/cart"
	"github.com/Jaro-dev-studio/TriggerTs/internal/event"
	"github.com/Jaro-dev-studio/TriggerTs/internal/search"
	"github.com/Jaro-dev-studio/TriggerTs/internal/session"
	"github.com/Jaro-dev-studio/TriggerTs/internal/wishlist"
	"github.com/Jaro-dev-studio/TriggerTs/pkg/health"
	"github.com/Jaro-dev-studio/TriggerTs/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Gateway       CatalogGateway
	Carts         *cart.Manager
	Wishlists     *wishlist.Manager
	Sessions      *session.Manager
	Suggest       *search.Manager
	Producer      *event.Producer
	HealthHandler *health.Handler
	CORS          middleware.CORSConfig
	Logger        *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(deps.Gateway, deps.Suggest, deps.Logger)
	cartHandler := NewCartHandler(deps.Carts, deps.Producer, deps.Logger)
	wishlistHandler := NewWishlistHandler(deps.Wishlists, deps.Producer, deps.Logger)
	authHandler := NewAuthHandler(deps.Sessions, deps.Producer, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog reads are visitor-agnostic.
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{handle}", catalogHandler.GetProduct)
		r.Get("/collections", catalogHandler.ListCollections)
		r.Get("/collections/{handle}", catalogHandler.GetCollection)
		r.Get("/search", catalogHandler.Search)

		// Everything below is scoped to a visitor device.
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(VisitorIDFromHeader)

			r.Post("/search/suggest", catalogHandler.SetSuggestQuery)
			r.Get("/search/suggest", catalogHandler.GetSuggestions)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{productID}", cartHandler.UpdateItemQuantity)
				r.Delete("/items/{productID}", cartHandler.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.GetWishlist)
				r.Delete("/", wishlistHandler.Clear)
				r.Post("/toggle", wishlistHandler.Toggle)
			})

			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", authHandler.Login)
				r.Post("/register", authHandler.Register)
				r.Post("/logout", authHandler.Logout)
				r.Post("/recover", authHandler.Recover)
			})

			r.Get("/account", authHandler.GetAccount)
			r.Get("/account/orders", authHandler.GetOrders)
		})
	})

	return r
}
