package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
)

func seedProducts(t *testing.T, m *MemoryStore) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fixtures := []catalog.Product{
		{ID: "p1", Name: "Wireless Headphones", Price: 2999, Rating: 4.5, CategoryID: "electronics", Featured: true},
		{ID: "p2", Name: "Mechanical Keyboard", Price: 4499, Rating: 4.7, CategoryID: "electronics"},
		{ID: "p3", Name: "Wired Headphones", Price: 999, Rating: 4.0, CategoryID: "electronics"},
		{ID: "p4", Name: "French Press", Price: 749, Rating: 4.4, CategoryID: "home", Featured: true},
		{ID: "p5", Name: "Cast Iron Skillet", Price: 899, Rating: 4.6, CategoryID: "home"},
	}
	for i := range fixtures {
		fixtures[i].Stock = 10
		fixtures[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, m.CreateProduct(context.Background(), &fixtures[i]))
	}
}

func TestMemoryStore_ListProducts_FilterByCategory(t *testing.T) {
	m := NewMemoryStore()
	seedProducts(t, m)

	products, total, err := m.ListProducts(context.Background(), catalog.ProductQuery{
		CategoryID: "home", Page: 1, PageSize: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, p := range products {
		assert.Equal(t, "home", p.CategoryID)
	}
}

func TestMemoryStore_ListProducts_FilterFeatured(t *testing.T) {
	m := NewMemoryStore()
	seedProducts(t, m)

	products, total, err := m.ListProducts(context.Background(), catalog.ProductQuery{
		Featured: true, Page: 1, PageSize: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, p := range products {
		assert.True(t, p.Featured)
	}
}

func TestMemoryStore_ListProducts_SearchIsCaseInsensitive(t *testing.T) {
	m := NewMemoryStore()
	seedProducts(t, m)

	products, total, err := m.ListProducts(context.Background(), catalog.ProductQuery{
		Search: "HEADPHONES", Page: 1, PageSize: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, p := range products {
		assert.Contains(t, p.Name, "Headphones")
	}
}

func TestMemoryStore_ListProducts_SortDeterministic(t *testing.T) {
	m := NewMemoryStore()
	seedProducts(t, m)
	q := catalog.ProductQuery{Sort: catalog.SortPriceAsc, Page: 1, PageSize: 10}

	first, _, err := m.ListProducts(context.Background(), q)
	require.NoError(t, err)

	// Map iteration order must not leak into results.
	for i := 0; i < 20; i++ {
		again, _, err := m.ListProducts(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMemoryStore_ListProducts_Pagination(t *testing.T) {
	m := NewMemoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		p := catalog.Product{
			ID:        fmt.Sprintf("p%02d", i),
			Name:      fmt.Sprintf("Product %02d", i),
			Price:     int64(100 + i),
			Stock:     1,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, m.CreateProduct(context.Background(), &p))
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		products, total, err := m.ListProducts(context.Background(), catalog.ProductQuery{
			Sort: catalog.SortNewest, Page: page, PageSize: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		for _, p := range products {
			assert.False(t, seen[p.ID], "product %s appeared on two pages", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 7)

	empty, total, err := m.ListProducts(context.Background(), catalog.ProductQuery{
		Sort: catalog.SortNewest, Page: 4, PageSize: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Empty(t, empty)
}

func TestMemoryStore_CartCopySemantics(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	c := &cart.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []cart.Item{{ID: "i1", ProductID: "p1", Quantity: 1, Price: 100}},
	}
	require.NoError(t, m.SaveCart(ctx, c))

	// Mutating the caller's copy after save must not change the stored
	// document.
	c.Items[0].Quantity = 99

	got, ok, err := m.GetCartByUser(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, got.Items[0].Quantity)

	// Same the other way around.
	got.Items[0].Quantity = 42
	again, _, err := m.GetCartByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestMemoryStore_SaveCart_LastWriteWins(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	// SaveCart is a blind upsert with no version check. Two writers
	// racing on the same cart both succeed and the later write stands.
	a := &cart.Cart{ID: "cart-1", UserID: "user-1", Items: []cart.Item{{ID: "i1", ProductID: "p1", Quantity: 2}}}
	b := &cart.Cart{ID: "cart-1", UserID: "user-1", Items: []cart.Item{{ID: "i2", ProductID: "p2", Quantity: 5}}}

	require.NoError(t, m.SaveCart(ctx, a))
	require.NoError(t, m.SaveCart(ctx, b))

	got, ok, err := m.GetCartByUser(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "i2", got.Items[0].ID)
}

func TestMemoryStore_ListOrdersByUser_NewestFirst(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		o := &order.Order{
			ID:        fmt.Sprintf("o%d", i),
			UserID:    "user-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, m.CreateOrder(ctx, o))
	}
	require.NoError(t, m.CreateOrder(ctx, &order.Order{ID: "other", UserID: "user-2", CreatedAt: base}))

	orders, err := m.ListOrdersByUser(ctx, "user-1")

	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "o2", orders[0].ID)
	assert.Equal(t, "o1", orders[1].ID)
	assert.Equal(t, "o0", orders[2].ID)
}
