package memstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"orderservice/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedOrder(id, userID string, status order.Status, age time.Duration) *order.Order {
	return &order.Order{
		ID:         id,
		UserID:     userID,
		Status:     status,
		TotalCents: 1000,
		CreatedAt:  time.Now().UTC().Add(-age),
	}
}

func TestPersistAndFindByID(t *testing.T) {
	s := NewOrders()

	o := storedOrder("order-1", "user-1", order.StatusPending, 0)
	require.NoError(t, s.Persist(context.Background(), o))

	found, err := s.FindByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, o.UserID, found.UserID)
	assert.Equal(t, o.TotalCents, found.TotalCents)

	_, err = s.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestFind_FiltersByStatusAndUser(t *testing.T) {
	s := NewOrders()
	ctx := context.Background()

	require.NoError(t, s.Persist(ctx, storedOrder("o1", "alice", order.StatusPending, time.Minute)))
	require.NoError(t, s.Persist(ctx, storedOrder("o2", "alice", order.StatusPaid, 2*time.Minute)))
	require.NoError(t, s.Persist(ctx, storedOrder("o3", "bob", order.StatusPending, 3*time.Minute)))

	orders, total, err := s.Find(ctx, order.Filter{UserID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)

	orders, total, err = s.Find(ctx, order.Filter{Status: order.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	orders, total, err = s.Find(ctx, order.Filter{UserID: "bob", Status: order.StatusPaid})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, orders)
}

func TestFind_NewestFirstWithPagination(t *testing.T) {
	s := NewOrders()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("o%02d", i)
		// Older orders get larger ages, so o00 is the newest.
		require.NoError(t, s.Persist(ctx, storedOrder(id, "user", order.StatusPending, time.Duration(i)*time.Minute)))
	}

	first, total, err := s.Find(ctx, order.Filter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, first, 10)
	assert.Equal(t, "o00", first[0].ID)
	assert.Equal(t, "o09", first[9].ID)

	third, _, err := s.Find(ctx, order.Filter{Page: 3, Limit: 10})
	require.NoError(t, err)
	require.Len(t, third, 5)
	assert.Equal(t, "o20", third[0].ID)

	beyond, _, err := s.Find(ctx, order.Filter{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestFind_DefaultsPageAndLimit(t *testing.T) {
	s := NewOrders()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, s.Persist(ctx, storedOrder(fmt.Sprintf("o%02d", i), "user", order.StatusPending, time.Duration(i)*time.Second)))
	}

	orders, total, err := s.Find(ctx, order.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, orders, 10)
}
