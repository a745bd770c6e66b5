package order

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// LineRequest is one requested order line as submitted by the caller. It is
// validated and transformed into an Item; it is never persisted directly.
type LineRequest struct {
	ProductID string
	Quantity  int64
}

// Address is the shipping destination captured with the order.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// PlaceOrderRequest is the validated input to order placement.
type PlaceOrderRequest struct {
	UserID          string
	Lines           []LineRequest
	ShippingAddress Address
}

// Validate rejects malformed requests before any reservation is attempted.
func (r PlaceOrderRequest) Validate() error {
	if r.UserID == "" {
		return &ValidationError{Message: "User ID is required"}
	}
	if len(r.Lines) == 0 {
		return &ValidationError{Message: "At least one order item is required"}
	}
	for i, line := range r.Lines {
		if line.ProductID == "" {
			return &ValidationError{Message: fmt.Sprintf("Item %d is missing a product ID", i)}
		}
		if line.Quantity <= 0 {
			return &ValidationError{Message: fmt.Sprintf("Item %d has a non-positive quantity", i)}
		}
	}
	return nil
}

// Item is one finalized order line. UnitPriceCents is a snapshot taken at
// reservation time; later catalog price changes never touch a persisted order.
type Item struct {
	ProductID      string
	ProductName    string
	Quantity       int64
	UnitPriceCents int64
	SubtotalCents  int64
}

// Order is the persisted aggregate. TotalCents always equals the sum of the
// item subtotals at creation time; this core never mutates an order after it
// is finalized.
type Order struct {
	ID              string
	UserID          string
	Items           []Item
	TotalCents      int64
	ShippingAddress Address
	Status          Status
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
}
