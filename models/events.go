package models

import (
	"time"

	"github.com/google/uuid"
)

const OrderPlacedEventType = "order.placed"

type OrderPlacedLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     string    `json:"price"`
}

type OrderPlacedEvent struct {
	Event     string            `json:"event"`
	OrderID   uuid.UUID         `json:"order_id"`
	Total     string            `json:"total"`
	Items     []OrderPlacedLine `json:"items"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewOrderPlacedEvent builds the event payload for a committed order.
func NewOrderPlacedEvent(order *Order) OrderPlacedEvent {
	lines := make([]OrderPlacedLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderPlacedLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
		})
	}
	return OrderPlacedEvent{
		Event:     OrderPlacedEventType,
		OrderID:   order.ID,
		Total:     order.Total.StringFixed(2),
		Items:     lines,
		Timestamp: order.CreatedAt,
	}
}
