package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jaro-dev-studio/TriggerTs/internal/domain"
	pkgkafka "github.com/Jaro-dev-studio/TriggerTs/pkg/kafka"
)

// Kafka topic constants for storefront activity events.
const (
	TopicCartUpdated       = "storefront.cart.updated"
	TopicCartCleared       = "storefront.cart.cleared"
	TopicWishlistUpdated   = "storefront.wishlist.updated"
	TopicCustomerSignedIn  = "storefront.customer.signed_in"
	TopicCustomerSignedOut = "storefront.customer.signed_out"
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeSession  = "session"
)

// Source identifier for events originating from this service.
const SourceStorefront = "storefront-bff"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	VisitorID string            `json:"visitor_id"`
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Subtotal  float64           `json:"subtotal"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	VisitorID string `json:"visitor_id"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	VisitorID  string   `json:"visitor_id"`
	ProductID  string   `json:"product_id"`
	InWishlist bool     `json:"in_wishlist"`
	Items      []string `json:"items"`
}

// CustomerSignedInData is the payload for a customer.signed_in event.
type CustomerSignedInData struct {
	VisitorID  string `json:"visitor_id"`
	CustomerID string `json:"customer_id"`
}

// CustomerSignedOutData is the payload for a customer.signed_out event.
type CustomerSignedOutData struct {
	VisitorID string `json:"visitor_id"`
}

// Producer publishes storefront activity events to Kafka. Publishing is
// best-effort at call sites: handlers log failures and carry on.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, visitorID string, snap domain.CartSnapshot) error {
	data := CartUpdatedData{
		VisitorID: visitorID,
		Lines:     snap.Lines,
		ItemCount: snap.ItemCount,
		Subtotal:  snap.Subtotal,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, visitorID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}
	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("visitor_id", visitorID),
		slog.Int("item_count", snap.ItemCount),
	)
	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, visitorID string) error {
	event, err := pkgkafka.NewEvent(TopicCartCleared, visitorID, AggregateTypeCart, SourceStorefront,
		CartClearedData{VisitorID: visitorID})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}
	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}
	return nil
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, visitorID, productID string, inWishlist bool, items []string) error {
	data := WishlistUpdatedData{
		VisitorID:  visitorID,
		ProductID:  productID,
		InWishlist: inWishlist,
		Items:      items,
	}

	event, err := pkgkafka.NewEvent(TopicWishlistUpdated, visitorID, AggregateTypeWishlist, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wishlist.updated event: %w", err)
	}
	if err := p.kafka.Publish(ctx, TopicWishlistUpdated, event); err != nil {
		return fmt.Errorf("publish wishlist.updated event: %w", err)
	}
	return nil
}

// PublishCustomerSignedIn publishes a customer.signed_in event.
func (p *Producer) PublishCustomerSignedIn(ctx context.Context, visitorID, customerID string) error {
	event, err := pkgkafka.NewEvent(TopicCustomerSignedIn, visitorID, AggregateTypeSession, SourceStorefront,
		CustomerSignedInData{VisitorID: visitorID, CustomerID: customerID})
	if err != nil {
		return fmt.Errorf("create customer.signed_in event: %w", err)
	}
	if err := p.kafka.Publish(ctx, TopicCustomerSignedIn, event); err != nil {
		return fmt.Errorf("publish customer.signed_in event: %w", err)
	}
	return nil
}

// PublishCustomerSignedOut publishes a customer.signed_out event.
func (p *Producer) PublishCustomerSignedOut(ctx context.Context, visitorID string) error {
	event, err := pkgkafka.NewEvent(TopicCustomerSignedOut, visitorID, AggregateTypeSession, SourceStorefront,
		CustomerSignedOutData{VisitorID: visitorID})
	if err != nil {
		return fmt.Errorf("create customer.signed_out event: %w", err)
	}
	if err := p.kafka.Publish(ctx, TopicCustomerSignedOut, event); err != nil {
		return fmt.Errorf("publish customer.signed_out event: %w", err)
	}
	return nil
}
