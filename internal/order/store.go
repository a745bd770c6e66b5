package order

import (
	"context"
	"errors"
)

// ErrOrderNotFound is returned by FindByID when no order matches.
var ErrOrderNotFound = errors.New("order not found")

// Filter narrows order listings. Page and Limit follow the API's pagination
// semantics; zero values fall back to the defaults applied by the store.
type Filter struct {
	Status Status
	UserID string
	Page   int64
	Limit  int64
}

// Store owns order persistence. Persist must write the complete order as one
// atomic document insert; a half-written order must never be observable.
type Store interface {
	Persist(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	Find(ctx context.Context, f Filter) ([]Order, int64, error)
}
