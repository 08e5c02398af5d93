package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jaro-dev-studio/TriggerTs/internal/cart"
	"github.com/Jaro-dev-studio/TriggerTs/internal/config"
	"github.com/Jaro-dev-studio/TriggerTs/internal/event"
	handler "github.com/Jaro-dev-studio/TriggerTs/internal/handler/http"
	"github.com/Jaro-dev-studio/TriggerTs/internal/search"
	"github.com/Jaro-dev-studio/TriggerTs/internal/session"
	"github.com/Jaro-dev-studio/TriggerTs/internal/shopify"
	redisstore "github.com/Jaro-dev-studio/TriggerTs/internal/storage/redis"
	"github.com/Jaro-dev-studio/TriggerTs/internal/wishlist"
	"github.com/Jaro-dev-studio/TriggerTs/pkg/health"
	"github.com/Jaro-dev-studio/TriggerTs/pkg/httpclient"
	pkgkafka "github.com/Jaro-dev-studio/TriggerTs/pkg/kafka"
	"github.com/Jaro-dev-studio/TriggerTs/pkg/middleware"
	"github.com/Jaro-dev-studio/TriggerTs/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	carts          *cart.Manager
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Outbound client to the commerce platform, wrapped in a circuit breaker.
	baseClient := httpclient.New(httpclient.Config{
		Timeout:         cfg.ShopifyTimeout,
		MaxRetries:      cfg.ShopifyMaxRetries,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 100,
	})
	cbClient := httpclient.NewCircuitBreakerClient(
		baseClient,
		httpclient.DefaultCircuitBreakerConfig("shopify-storefront"),
		logger,
	)
	gateway := shopify.NewClient(cfg.ShopifyEndpoint(), cfg.ShopifyAccessToken, cbClient, logger)
	logger.Info("shopify storefront client initialized",
		slog.String("domain", cfg.ShopifyStoreDomain),
		slog.String("api_version", cfg.ShopifyAPIVersion),
	)

	// Build the dependency graph.
	store := redisstore.NewStore(rdb, cfg.VisitorStateTTL)
	eventProducer := event.NewProducer(producer, logger)
	carts := cart.NewManager(cfg.CartIdleTimeout, logger)
	wishlists := wishlist.NewManager(store, gateway, logger)
	sessions := session.NewManager(store, gateway, logger)
	suggest := search.NewManager(gateway, cfg.SearchDebounce, cfg.SearchSuggestLimit, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(handler.RouterDeps{
		Gateway:       gateway,
		Carts:         carts,
		Wishlists:     wishlists,
		Sessions:      sessions,
		Suggest:       suggest,
		Producer:      eventProducer,
		HealthHandler: healthHandler,
		CORS:          corsCfg,
		Logger:        logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		carts:          carts,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and the cart sweeper, blocking until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.carts.Run(sweepCtx)

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
