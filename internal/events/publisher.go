package events

import (
	"context"
	"fmt"
	"time"

	"github.com/Tesseract-Nexus/go-shared/events"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
)

// Catalog event types beyond the shared product ones
const (
	CatalogReplaced = "product.catalog_replaced"
)

// Actor identifies who triggered a change
type Actor struct {
	ID        string
	Name      string
	Email     string
	ClientIP  string
	UserAgent string
}

type actorKey struct{}

// WithActor attaches actor to ctx so change observers can report it
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor attached to ctx, or the system actor
func ActorFrom(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return Actor{ID: "system", Name: "catalog-service"}
}

// Publisher wraps the go-shared events publisher for catalog events
type Publisher struct {
	publisher *events.Publisher
	storeID   string
	logger    *logrus.Entry
}

// NewPublisher connects to NATS and makes sure the products stream exists
func NewPublisher(natsURL, storeID string, logger *logrus.Logger) (*Publisher, error) {
	config := events.DefaultPublisherConfig(natsURL)
	config.Name = "catalog-service"

	publisher, err := events.NewPublisher(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create events publisher: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := publisher.EnsureStream(ctx, events.StreamProducts, []string{"product.>"}); err != nil {
		logger.WithError(err).Warn("Failed to ensure products stream (may already exist)")
	}

	return &Publisher{
		publisher: publisher,
		storeID:   storeID,
		logger:    logger.WithField("component", "catalog-events"),
	}, nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p != nil && p.publisher != nil {
		p.publisher.Close()
	}
}

// HandleChange publishes the event matching a committed catalog change.
// It has the catalog.Observer signature.
func (p *Publisher) HandleChange(ctx context.Context, change catalog.Change) {
	if p == nil {
		return
	}
	actor := ActorFrom(ctx)
	switch change.Kind {
	case catalog.ChangeCreated:
		p.PublishProductCreated(ctx, change.Product, actor)
	case catalog.ChangeUpdated:
		p.PublishProductUpdated(ctx, change.Product, actor)
	case catalog.ChangeDeleted:
		p.PublishProductDeleted(ctx, change.Product, actor)
	default:
		p.PublishCatalogReplaced(ctx, change.Snapshot, actor)
	}
}

// PublishCatalogReplaced publishes a catalog replacement with its size and source
func (p *Publisher) PublishCatalogReplaced(ctx context.Context, snap catalog.Snapshot, actor Actor) error {
	event := events.NewProductEvent(CatalogReplaced, p.storeID)
	event.SourceID = uuid.New().String()
	event.ChangeType = "replaced"
	event.NewValue = map[string]interface{}{
		"source":  snap.Source,
		"count":   len(snap.Products),
		"version": snap.Version,
	}
	applyActor(event, actor)
	return p.publish(ctx, event)
}

// PublishProductCreated publishes a product.created event
func (p *Publisher) PublishProductCreated(ctx context.Context, product models.Product, actor Actor) error {
	event := p.buildProductEvent(events.ProductCreated, product)
	event.ChangeType = "created"
	applyActor(event, actor)
	return p.publish(ctx, event)
}

// PublishProductUpdated publishes a product.updated event
func (p *Publisher) PublishProductUpdated(ctx context.Context, product models.Product, actor Actor) error {
	event := p.buildProductEvent(events.ProductUpdated, product)
	event.ChangeType = "updated"
	event.NewValue = map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"category":    product.Category,
		"price":       product.Price,
		"image":       product.Image,
	}
	applyActor(event, actor)
	return p.publish(ctx, event)
}

// PublishProductDeleted publishes a product.deleted event
func (p *Publisher) PublishProductDeleted(ctx context.Context, product models.Product, actor Actor) error {
	event := p.buildProductEvent(events.ProductDeleted, product)
	event.ChangeType = "deleted"
	applyActor(event, actor)
	return p.publish(ctx, event)
}

// buildProductEvent creates a ProductEvent from a catalog product. The
// display code doubles as the SKU and the category label as the category id.
func (p *Publisher) buildProductEvent(eventType string, product models.Product) *events.ProductEvent {
	event := events.NewProductEvent(eventType, p.storeID)
	event.SourceID = uuid.New().String()
	event.ProductID = product.ID.String()
	event.ProductName = product.Name
	event.SKU = product.Code
	event.Price = product.Price
	event.CategoryID = product.Category
	return event
}

func applyActor(event *events.ProductEvent, actor Actor) {
	event.ActorID = actor.ID
	event.ActorName = actor.Name
	event.ActorEmail = actor.Email
	event.ClientIP = actor.ClientIP
	event.UserAgent = actor.UserAgent
}

// publish is a helper that logs and publishes events asynchronously
func (p *Publisher) publish(ctx context.Context, event *events.ProductEvent) error {
	// Publish asynchronously to not block the main flow
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := p.publisher.PublishProduct(pubCtx, event); err != nil {
			p.logger.WithFields(logrus.Fields{
				"eventType": event.EventType,
				"productID": event.ProductID,
				"storeID":   event.TenantID,
			}).WithError(err).Error("Failed to publish catalog event")
		} else {
			p.logger.WithFields(logrus.Fields{
				"eventType":   event.EventType,
				"productID":   event.ProductID,
				"productName": event.ProductName,
			}).Debug("Catalog event published")
		}
	}()

	return nil
}
