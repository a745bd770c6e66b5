package catalog

import (
	"context"
	"errors"
)

// Product is a catalog entry as the order flow sees it. Prices are integer
// minor units (cents). Stock is never written through this package; only the
// inventory ledger mutates it.
type Product struct {
	ID         string
	Name       string
	PriceCents int64
	Stock      int64
	Active     bool
}

// ErrNotFound is returned when no product exists for the given id.
var ErrNotFound = errors.New("product not found")

// Catalog is the read-only product lookup the order flow depends on.
type Catalog interface {
	ProductByID(ctx context.Context, id string) (*Product, error)
}
