package order_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"orderservice/internal/order"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProducer struct {
	messages []kafkago.Message
	err      error
}

func (p *fakeProducer) WriteMessage(ctx context.Context, msg kafkago.Message) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func TestKafkaPublisher_PublishOrderCreated(t *testing.T) {
	producer := &fakeProducer{}
	publisher := order.NewKafkaPublisher(producer, zap.NewNop())

	o := &order.Order{
		ID:         "order-42",
		UserID:     "user-1",
		TotalCents: 2999,
		Items: []order.Item{
			{ProductID: "p1", Quantity: 2, UnitPriceCents: 1000, SubtotalCents: 2000},
			{ProductID: "p2", Quantity: 1, UnitPriceCents: 999, SubtotalCents: 999},
		},
	}

	require.NoError(t, publisher.PublishOrderCreated(context.Background(), o))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "order-42", string(msg.Key))

	var event order.OrderCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "order-42", event.OrderID)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, int64(2999), event.TotalCents)
	require.Len(t, event.Items, 2)
	assert.Equal(t, int64(1000), event.Items[0].UnitPriceCents)
}

func TestKafkaPublisher_WriteFailureIsReturned(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker unreachable")}
	publisher := order.NewKafkaPublisher(producer, zap.NewNop())

	err := publisher.PublishOrderCreated(context.Background(), &order.Order{ID: "o1"})
	assert.ErrorContains(t, err, "broker unreachable")
}
