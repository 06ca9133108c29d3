package events

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/Tesseract-Nexus/go-shared/events"
	"admin-bff-service/internal/models"
)

// Publisher wraps the go-shared events publisher for the admin audit trail.
// Every admin action that mutates catalog state publishes an event so the
// platform-wide audit consumers see admin edits alongside the ones the
// backend services publish themselves.
type Publisher struct {
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewPublisher creates a new admin audit events publisher
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		// Default to GKE internal NATS service URL
		natsURL = "nats://nats.nats.svc.cluster.local:4222"
	}

	config := events.DefaultPublisherConfig(natsURL)
	config.Name = "admin-bff-service"

	publisher, err := events.NewPublisher(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create events publisher: %w", err)
	}

	// Ensure the products stream exists
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := publisher.EnsureStream(ctx, events.StreamProducts, []string{"product.>"}); err != nil {
		logger.WithError(err).Warn("Failed to ensure products stream (may already exist)")
	}

	return &Publisher{
		publisher: publisher,
		logger:    logger.WithField("component", "admin-audit-events"),
	}, nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.publisher != nil {
		p.publisher.Close()
	}
}

// Actor identifies the admin user behind an action
type Actor struct {
	ID    string
	Name  string
	Email string
}

// PublishProductSaved publishes a product.created or product.updated event
// depending on whether the admin committed a new draft or edited an existing
// product
func (p *Publisher) PublishProductSaved(ctx context.Context, product *models.Product, tenantID string, created bool, changedFields []string, actor Actor) error {
	eventType := events.ProductUpdated
	changeType := "updated"
	if created {
		eventType = events.ProductCreated
		changeType = "created"
	}

	event := p.buildProductEvent(eventType, product, tenantID)
	event.ActorID = actor.ID
	event.ActorName = actor.Name
	event.ActorEmail = actor.Email
	event.ChangeType = changeType
	event.ChangedFields = changedFields
	return p.publish(ctx, event)
}

// PublishProductStatusChanged publishes a product status change event
func (p *Publisher) PublishProductStatusChanged(ctx context.Context, product *models.Product, oldStatus, newStatus string, tenantID string, actor Actor) error {
	event := p.buildProductEvent("product.status_changed", product, tenantID)
	event.ActorID = actor.ID
	event.ActorName = actor.Name
	event.ActorEmail = actor.Email
	event.ChangeType = "status_changed"
	event.OldValue = map[string]interface{}{"status": oldStatus}
	event.NewValue = map[string]interface{}{"status": newStatus}
	event.ChangedFields = []string{"status"}
	return p.publish(ctx, event)
}

// PublishBulkStatusChanged publishes one event per product in a bulk status change
func (p *Publisher) PublishBulkStatusChanged(ctx context.Context, productIDs []string, newStatus string, tenantID string, actor Actor) error {
	for _, productID := range productIDs {
		event := events.NewProductEvent("product.status_changed", tenantID)
		event.SourceID = uuid.New().String()
		event.ProductID = productID
		event.Status = newStatus
		event.ActorID = actor.ID
		event.ActorName = actor.Name
		event.ActorEmail = actor.Email
		event.ChangeType = "bulk_status_changed"
		event.NewValue = map[string]interface{}{"status": newStatus}
		event.ChangedFields = []string{"status"}
		if err := p.publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// PublishImagesUploaded publishes an event after an upload batch completes
func (p *Publisher) PublishImagesUploaded(ctx context.Context, productID, tenantID string, uploaded, failed int, actor Actor) error {
	event := events.NewProductEvent("product.images_uploaded", tenantID)
	event.SourceID = uuid.New().String()
	event.ProductID = productID
	event.ActorID = actor.ID
	event.ActorName = actor.Name
	event.ActorEmail = actor.Email
	event.ChangeType = "images_uploaded"
	event.NewValue = map[string]interface{}{
		"uploaded": uploaded,
		"failed":   failed,
	}
	event.ChangedFields = []string{"images"}
	return p.publish(ctx, event)
}

// buildProductEvent creates a ProductEvent from a product model
func (p *Publisher) buildProductEvent(eventType string, product *models.Product, tenantID string) *events.ProductEvent {
	event := events.NewProductEvent(eventType, tenantID)
	event.SourceID = uuid.New().String()
	event.ProductID = product.ID
	event.ProductName = product.Name
	event.SKU = product.SKU
	event.Status = string(product.Status)

	// Parse price string to float64
	if price, err := parsePrice(product.Price); err == nil {
		event.Price = price
	}

	if product.CategoryID != "" {
		event.CategoryID = product.CategoryID
	}
	if product.VendorID != "" {
		event.VendorID = product.VendorID
	}

	return event
}

// parsePrice converts a price string to float64
func parsePrice(priceStr string) (float64, error) {
	var price float64
	_, err := fmt.Sscanf(priceStr, "%f", &price)
	return price, err
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
				"tenantID":  event.TenantID,
			}).WithError(err).Error("Failed to publish admin audit event")
		} else {
			p.logger.WithFields(logrus.Fields{
				"eventType": event.EventType,
				"productID": event.ProductID,
				"tenantID":  event.TenantID,
			}).Info("Admin audit event published")
		}
	}()

	return nil
}
