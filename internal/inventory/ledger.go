package inventory

import (
	"context"
	"fmt"
)

// Ledger owns all stock mutation. Reserve is a conditional decrement that
// succeeds only if the product is active and has at least qty units at the
// instant of the operation; check and decrement happen as one atomic step,
// never as a separate read followed by a write. Release is the compensating
// increment and must be called at most once per granted reservation.
type Ledger interface {
	Reserve(ctx context.Context, productID string, qty int64) error
	Release(ctx context.Context, productID string, qty int64) error
}

// NotFoundError reports a reservation against a product that does not exist
// or is inactive.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with ID %s not found", e.ProductID)
}

// InsufficientStockError reports a failed conditional decrement. Available is
// the stock observed at failure time, which under concurrency may already be
// the residual left by a competing order.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
