package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderservice/internal/catalog"
	"orderservice/internal/inventory"
	"orderservice/internal/platform/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// grant records one successful reservation so compensation can undo exactly
// what was granted, once, and nothing else.
type grant struct {
	productID string
	quantity  int64
}

// Coordinator drives the order-placement workflow: validate, reserve stock
// per line, price, persist. Placement is all-or-nothing: any failure after a
// reservation has been granted releases every prior grant before the error is
// returned, so no net stock change survives a failed attempt.
type Coordinator struct {
	catalog catalog.Catalog
	ledger  inventory.Ledger
	store   Store
	logger  observability.Logger
	tracer  observability.Tracer
}

func NewCoordinator(
	cat catalog.Catalog,
	ledger inventory.Ledger,
	store Store,
	logger observability.Logger,
	tracer observability.Tracer,
) *Coordinator {
	return &Coordinator{
		catalog: cat,
		ledger:  ledger,
		store:   store,
		logger:  logger,
		tracer:  tracer,
	}
}

// PlaceOrder executes one placement attempt. Lines are processed in the order
// submitted; two lines naming the same product reserve sequentially, so the
// second line sees the first line's decrement. Compensation runs on every
// exit path after the first grant, including context cancellation.
func (c *Coordinator) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "place_order")
	defer span.End()

	span.SetAttributes(
		attribute.String("order.user_id", req.UserID),
		attribute.Int("order.line_count", len(req.Lines)),
	)

	var grants []grant
	committed := false
	defer func() {
		if !committed && len(grants) > 0 {
			c.releaseAll(ctx, grants)
		}
	}()

	items := make([]Item, 0, len(req.Lines))
	for _, line := range req.Lines {
		product, err := c.catalog.ProductByID(ctx, line.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			span.SetStatus(codes.Error, "product not found")
			return nil, &inventory.NotFoundError{ProductID: line.ProductID}
		}
		if err != nil {
			span.SetStatus(codes.Error, "catalog lookup failed")
			return nil, fmt.Errorf("catalog lookup for %s: %w", line.ProductID, err)
		}
		if !product.Active {
			span.SetStatus(codes.Error, "product inactive")
			return nil, &inventory.NotFoundError{ProductID: line.ProductID}
		}

		if err := c.ledger.Reserve(ctx, line.ProductID, line.Quantity); err != nil {
			span.SetStatus(codes.Error, "reservation failed")
			return nil, err
		}
		grants = append(grants, grant{productID: line.ProductID, quantity: line.Quantity})

		// Price is captured here, at reservation time. The persisted order
		// keeps this snapshot even if the catalog price changes later.
		items = append(items, Item{
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: product.PriceCents,
		})
	}

	total := PriceItems(items)

	o := &Order{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		Items:           items,
		TotalCents:      total,
		ShippingAddress: req.ShippingAddress,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := c.store.Persist(ctx, o); err != nil {
		span.SetStatus(codes.Error, "persistence failed")
		return nil, &PersistenceError{Err: err}
	}
	committed = true

	span.SetAttributes(
		attribute.String("order.id", o.ID),
		attribute.Int64("order.total_cents", o.TotalCents),
	)
	span.SetStatus(codes.Ok, "order placed")

	c.logger.Info("✅ Order placed",
		zap.String("order_id", o.ID),
		zap.String("user_id", o.UserID),
		zap.Int64("total_cents", o.TotalCents),
		zap.Int("items", len(o.Items)),
	)

	return o, nil
}

// releaseAll undoes every grant of a failed attempt. Releases are commutative
// so ordering does not matter. The detached context keeps compensation
// running even when the request context was cancelled mid-placement.
func (c *Coordinator) releaseAll(ctx context.Context, grants []grant) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	for _, g := range grants {
		if err := c.ledger.Release(releaseCtx, g.productID, g.quantity); err != nil {
			c.logger.Error("❌ Failed to release reservation",
				zap.String("product_id", g.productID),
				zap.Int64("quantity", g.quantity),
				zap.Error(err),
			)
		}
	}
}
