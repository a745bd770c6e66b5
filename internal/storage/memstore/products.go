package memstore

import (
	"context"
	"sync"

	"orderservice/internal/catalog"
	"orderservice/internal/inventory"
)

// Products is an in-memory product collection implementing both the catalog
// lookup and the inventory ledger over the same records, mirroring how the
// Mongo implementation backs both ports with one collection. A single mutex
// makes the ledger's check-and-decrement one atomic step.
type Products struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
}

func NewProducts() *Products {
	return &Products{products: make(map[string]*catalog.Product)}
}

// Put inserts or replaces a product record.
func (p *Products) Put(product catalog.Product) {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored := product
	p.products[product.ID] = &stored
}

func (p *Products) ProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	product, ok := p.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (p *Products) Reserve(ctx context.Context, productID string, qty int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	product, ok := p.products[productID]
	if !ok || !product.Active {
		return &inventory.NotFoundError{ProductID: productID}
	}
	if product.Stock < qty {
		return &inventory.InsufficientStockError{
			ProductID: productID,
			Requested: qty,
			Available: product.Stock,
		}
	}
	product.Stock -= qty
	return nil
}

func (p *Products) Release(ctx context.Context, productID string, qty int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	product, ok := p.products[productID]
	if !ok {
		return &inventory.NotFoundError{ProductID: productID}
	}
	product.Stock += qty
	return nil
}

// Stock reports the current stock count, for tests and local inspection.
func (p *Products) Stock(productID string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	product, ok := p.products[productID]
	if !ok {
		return 0
	}
	return product.Stock
}
