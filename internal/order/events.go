package order

import (
	"context"
	"encoding/json"

	"orderservice/internal/platform/kafka"
	"orderservice/internal/platform/observability"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// OrderCreatedEvent is published after an order is durably persisted.
// Downstream services (inventory, shipping, analytics) consume it; none of
// them may mutate the order or the stock this service already settled.
type OrderCreatedEvent struct {
	OrderID    string           `json:"order_id"`
	UserID     string           `json:"user_id"`
	TotalCents int64            `json:"total_cents"`
	Items      []OrderEventItem `json:"items"`
}

type OrderEventItem struct {
	ProductID      string `json:"product_id"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// EventPublisher announces finalized orders to the rest of the system.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, o *Order) error
}

// KafkaPublisher publishes order events through an instrumented Kafka writer.
type KafkaPublisher struct {
	producer kafka.Producer
	logger   observability.Logger
}

func NewKafkaPublisher(producer kafka.Producer, logger observability.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: logger}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, o *Order) error {
	event := OrderCreatedEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalCents: o.TotalCents,
		Items:      make([]OrderEventItem, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		event.Items = append(event.Items, OrderEventItem{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(o.ID),
		Value: payload,
	}

	if err := p.producer.WriteMessage(ctx, msg); err != nil {
		p.logger.Error("❌ Failed to publish OrderCreated event",
			zap.Error(err),
			zap.String("order_id", o.ID),
		)
		return err
	}

	p.logger.Info("📤 Sent OrderCreated event", zap.String("order_id", o.ID))
	return nil
}
