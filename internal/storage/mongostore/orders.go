package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderservice/internal/config"
	"orderservice/internal/order"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderItemDoc struct {
	ProductID      string `bson:"productId"`
	ProductName    string `bson:"productName"`
	Quantity       int64  `bson:"quantity"`
	UnitPriceCents int64  `bson:"unitPriceCents"`
	SubtotalCents  int64  `bson:"subtotalCents"`
}

type addressDoc struct {
	Street  string `bson:"street,omitempty"`
	City    string `bson:"city,omitempty"`
	State   string `bson:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty"`
	Country string `bson:"country,omitempty"`
}

type orderDoc struct {
	ID              string         `bson:"_id"`
	UserID          string         `bson:"user"`
	Items           []orderItemDoc `bson:"items"`
	TotalCents      int64          `bson:"totalCents"`
	ShippingAddress addressDoc     `bson:"shippingAddress"`
	Status          string         `bson:"status"`
	PaymentStatus   string         `bson:"paymentStatus"`
	CreatedAt       time.Time      `bson:"createdAt"`
}

// Orders persists finalized orders. Each order is one document, so Persist is
// a single atomic insert and readers never see a partially written order.
type Orders struct {
	col *mongo.Collection
}

func NewOrders(db *mongo.Database) *Orders {
	return &Orders{col: db.Collection(config.OrdersCollection)}
}

func (s *Orders) Persist(ctx context.Context, o *order.Order) error {
	if _, err := s.col.InsertOne(ctx, toOrderDoc(o)); err != nil {
		return fmt.Errorf("insert order %s: %w", o.ID, err)
	}
	return nil
}

func (s *Orders) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var doc orderDoc
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return fromOrderDoc(doc), nil
}

func (s *Orders) Find(ctx context.Context, f order.Filter) ([]order.Order, int64, error) {
	query := bson.M{}
	if f.Status != "" {
		query["status"] = string(f.Status)
	}
	if f.UserID != "" {
		query["user"] = f.UserID
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]order.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, *fromOrderDoc(doc))
	}
	return orders, total, nil
}

func toOrderDoc(o *order.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemDoc(item))
	}
	return orderDoc{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		TotalCents:      o.TotalCents,
		ShippingAddress: addressDoc(o.ShippingAddress),
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		CreatedAt:       o.CreatedAt,
	}
}

func fromOrderDoc(doc orderDoc) *order.Order {
	items := make([]order.Item, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, order.Item(item))
	}
	return &order.Order{
		ID:              doc.ID,
		UserID:          doc.UserID,
		Items:           items,
		TotalCents:      doc.TotalCents,
		ShippingAddress: order.Address(doc.ShippingAddress),
		Status:          order.Status(doc.Status),
		PaymentStatus:   order.PaymentStatus(doc.PaymentStatus),
		CreatedAt:       doc.CreatedAt,
	}
}
