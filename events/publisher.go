package events

import (
	"context"

	"storefront-service/models"
)

// Publisher announces committed orders to downstream consumers.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, models.OrderPlacedEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
