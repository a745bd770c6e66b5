package order

import (
	"context"

	"orderservice/internal/platform/observability"

	"go.uber.org/zap"
)

// Service is the entry point the transport layer talks to. It runs the
// placement workflow through the coordinator, announces successful orders,
// and serves the read paths off the store.
type Service struct {
	coordinator *Coordinator
	store       Store
	publisher   EventPublisher
	logger      observability.Logger
}

func NewService(coordinator *Coordinator, store Store, publisher EventPublisher, logger observability.Logger) *Service {
	return &Service{
		coordinator: coordinator,
		store:       store,
		publisher:   publisher,
		logger:      logger,
	}
}

// PlaceOrder places an order and publishes OrderCreated on success. A publish
// failure is logged but not surfaced: the order is already durable and stock
// is settled, so the caller must not see it as a failed placement.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	o, err := s.coordinator.PlaceOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, o); err != nil {
			s.logger.Error("OrderCreated publish failed after persistence",
				zap.String("order_id", o.ID),
				zap.Error(err),
			)
		}
	}

	return o, nil
}

// Order returns a single order by id.
func (s *Service) Order(ctx context.Context, id string) (*Order, error) {
	return s.store.FindByID(ctx, id)
}

// Orders lists orders matching the filter, newest first, with the total match
// count for pagination.
func (s *Service) Orders(ctx context.Context, f Filter) ([]Order, int64, error) {
	return s.store.Find(ctx, f)
}
