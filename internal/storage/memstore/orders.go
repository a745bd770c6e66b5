package memstore

import (
	"context"
	"sort"
	"sync"

	"orderservice/internal/order"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Orders is an in-memory order store. Persist holds the lock for the whole
// insert, so a partially written order is never observable.
type Orders struct {
	mu     sync.RWMutex
	orders map[string]order.Order
}

func NewOrders() *Orders {
	return &Orders{orders: make(map[string]order.Order)}
}

func (s *Orders) Persist(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = *o
	return nil
}

func (s *Orders) FindByID(ctx context.Context, id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return &o, nil
}

func (s *Orders) Find(ctx context.Context, f order.Filter) ([]order.Order, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		matched = append(matched, o)
	}

	// Newest first, id as tie-break for stable pages.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	start := (page - 1) * limit
	if start >= total {
		return []order.Order{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// Count reports how many orders are stored, for tests.
func (s *Orders) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
