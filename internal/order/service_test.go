package order_test

import (
	"context"
	"errors"
	"testing"

	"orderservice/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturingPublisher struct {
	published []order.OrderCreatedEvent
	err       error
}

func (p *capturingPublisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	if p.err != nil {
		return p.err
	}
	event := order.OrderCreatedEvent{OrderID: o.ID, UserID: o.UserID, TotalCents: o.TotalCents}
	for _, item := range o.Items {
		event.Items = append(event.Items, order.OrderEventItem{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	p.published = append(p.published, event)
	return nil
}

func newService(f *fixture, publisher order.EventPublisher) *order.Service {
	return order.NewService(f.coordinator, f.orders, publisher, zap.NewNop())
}

func TestService_PublishesOrderCreatedOnSuccess(t *testing.T) {
	f := newFixture()
	publisher := &capturingPublisher{}
	service := newService(f, publisher)

	o, err := service.PlaceOrder(context.Background(), placeRequest(
		order.LineRequest{ProductID: "p1", Quantity: 1},
	))
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, o.ID, publisher.published[0].OrderID)
	assert.Equal(t, o.TotalCents, publisher.published[0].TotalCents)
	require.Len(t, publisher.published[0].Items, 1)
	assert.Equal(t, "p1", publisher.published[0].Items[0].ProductID)
}

func TestService_NoEventOnFailedPlacement(t *testing.T) {
	f := newFixture()
	publisher := &capturingPublisher{}
	service := newService(f, publisher)

	_, err := service.PlaceOrder(context.Background(), placeRequest(
		order.LineRequest{ProductID: "p1", Quantity: 100},
	))
	require.Error(t, err)
	assert.Empty(t, publisher.published)
}

func TestService_PublishFailureDoesNotFailPlacement(t *testing.T) {
	f := newFixture()
	publisher := &capturingPublisher{err: errors.New("broker down")}
	service := newService(f, publisher)

	// The order is durable and stock is settled before publishing; a broker
	// outage must not surface as a failed placement.
	o, err := service.PlaceOrder(context.Background(), placeRequest(
		order.LineRequest{ProductID: "p1", Quantity: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.products.Stock("p1"))

	persisted, err := f.orders.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, persisted.ID)
}

func TestService_ReadPaths(t *testing.T) {
	f := newFixture()
	service := newService(f, &capturingPublisher{})

	placed, err := service.PlaceOrder(context.Background(), placeRequest(
		order.LineRequest{ProductID: "p2", Quantity: 2},
	))
	require.NoError(t, err)

	found, err := service.Order(context.Background(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.TotalCents, found.TotalCents)

	_, err = service.Order(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	orders, total, err := service.Orders(context.Background(), order.Filter{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
}
