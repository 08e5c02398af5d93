package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Jaro-dev-studio/TriggerTs/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort        int           `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Shopify Storefront API
	ShopifyStoreDomain string        `env:"SHOPIFY_STORE_DOMAIN,required"`
	ShopifyAccessToken string        `env:"SHOPIFY_STOREFRONT_ACCESS_TOKEN,required"`
	ShopifyAPIVersion  string        `env:"SHOPIFY_API_VERSION" envDefault:"2024-01"`
	ShopifyTimeout     time.Duration `env:"SHOPIFY_TIMEOUT" envDefault:"10s"`
	ShopifyMaxRetries  int           `env:"SHOPIFY_MAX_RETRIES" envDefault:"2"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Visitor state TTL (default: 30 days)
	VisitorStateTTL time.Duration `env:"VISITOR_STATE_TTL" envDefault:"720h"`

	// Idle carts are evicted from memory after this long without activity.
	CartIdleTimeout time.Duration `env:"CART_IDLE_TIMEOUT" envDefault:"30m"`

	// Search debounce window before a query is dispatched upstream.
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`

	// Maximum number of products returned per debounced search.
	SearchSuggestLimit int `env:"SEARCH_SUGGEST_LIMIT" envDefault:"10"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint      string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("search debounce must not be negative: %s", c.SearchDebounce)
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("tracing sample rate must be in [0,1]: %f", c.TracingSampleRate)
	}
	return nil
}

// ShopifyEndpoint returns the fully qualified Storefront GraphQL endpoint.
func (c *Config) ShopifyEndpoint() string {
	return fmt.Sprintf("https://%s/api/%s/graphql.json", c.ShopifyStoreDomain, c.ShopifyAPIVersion)
}
