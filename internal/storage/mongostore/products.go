package mongostore

import (
	"context"
	"errors"
	"fmt"

	"orderservice/internal/catalog"
	"orderservice/internal/config"
	"orderservice/internal/inventory"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type productDoc struct {
	ID         string `bson:"_id"`
	Name       string `bson:"name"`
	PriceCents int64  `bson:"priceCents"`
	Stock      int64  `bson:"stock"`
	IsActive   bool   `bson:"isActive"`
}

// Products backs both the catalog lookup and the inventory ledger with the
// products collection. Reserve relies on Mongo's single-document atomicity:
// the stock precondition and the decrement are one server-side update, never
// a read followed by a write.
type Products struct {
	col *mongo.Collection
}

func NewProducts(db *mongo.Database) *Products {
	return &Products{col: db.Collection(config.ProductsCollection)}
}

func (p *Products) ProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	var doc productDoc
	err := p.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &catalog.Product{
		ID:         doc.ID,
		Name:       doc.Name,
		PriceCents: doc.PriceCents,
		Stock:      doc.Stock,
		Active:     doc.IsActive,
	}, nil
}

func (p *Products) Reserve(ctx context.Context, productID string, qty int64) error {
	res, err := p.col.UpdateOne(ctx,
		bson.M{
			"_id":      productID,
			"isActive": true,
			"stock":    bson.M{"$gte": qty},
		},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return fmt.Errorf("reserve stock for %s: %w", productID, err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	// The conditional update matched nothing: either the product is gone or
	// the stock precondition failed. A second read tells the caller which.
	var doc productDoc
	err = p.col.FindOne(ctx, bson.M{"_id": productID, "isActive": true}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &inventory.NotFoundError{ProductID: productID}
	}
	if err != nil {
		return fmt.Errorf("inspect stock for %s: %w", productID, err)
	}
	return &inventory.InsufficientStockError{
		ProductID: productID,
		Requested: qty,
		Available: doc.Stock,
	}
}

func (p *Products) Release(ctx context.Context, productID string, qty int64) error {
	res, err := p.col.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	if err != nil {
		return fmt.Errorf("release stock for %s: %w", productID, err)
	}
	if res.MatchedCount == 0 {
		return &inventory.NotFoundError{ProductID: productID}
	}
	return nil
}
