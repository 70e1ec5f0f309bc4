package order_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/infrastructure/store"
)

type fakePublisher struct {
	keys   []string
	events []any
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, key string, event any) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.events = append(f.events, event)
	return nil
}

func newTestOrderService(t *testing.T) (*order.Service, *cart.Service, *store.MemoryStore, *fakePublisher) {
	t.Helper()
	st := store.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	carts := cart.NewService(st, st, log)
	pub := &fakePublisher{}
	return order.NewService(st, st, carts, pub, log), carts, st, pub
}

func seedProduct(t *testing.T, st *store.MemoryStore, id, name string, price int64, stock int) {
	t.Helper()
	err := st.CreateProduct(context.Background(), &catalog.Product{
		ID:        id,
		Name:      name,
		Image:     "/images/" + id + ".jpg",
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func testAddress() order.ShippingAddress {
	return order.ShippingAddress{
		FullName:   "Asha Rao",
		Address:    "14 MG Road",
		City:       "Bengaluru",
		PostalCode: "560001",
		Country:    "India",
		Phone:      "+91 98765 43210",
	}
}

// ============================================
// Place Tests
// ============================================

func TestService_Place_Success(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)
	seedProduct(t, st, "prod-2", "Keyboard", 150, 10)

	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, "user-1", "prod-2", 2)
	require.NoError(t, err)

	o, err := service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)

	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "user-1", o.UserID)
	assert.Equal(t, order.StatusPending, o.Status)

	// Items price 300 + 2*150 = 600: above the free shipping threshold,
	// so shipping is 0 and tax is 18% = 108.
	assert.Equal(t, int64(600), o.ItemsPrice)
	assert.Equal(t, int64(0), o.ShippingPrice)
	assert.Equal(t, int64(108), o.TaxPrice)
	assert.Equal(t, int64(708), o.TotalAmount)

	require.Len(t, o.Items, 2)
	assert.Equal(t, "prod-1", o.Items[0].ProductID)
	assert.Equal(t, "Headphones", o.Items[0].Name)
	assert.Equal(t, int64(300), o.Items[0].Price)
	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.Equal(t, "prod-2", o.Items[1].ProductID)
	assert.Equal(t, 2, o.Items[1].Quantity)

	// The cart is cleared, not deleted.
	c, err := carts.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	// Stock is checked but never decremented at checkout.
	p, ok, err := st.GetProduct(ctx, "prod-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, p.Stock)
}

func TestService_Place_BelowFreeShippingThreshold(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Charger", 100, 10)

	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)

	o, err := service.Place(ctx, "user-1", testAddress(), order.PaymentCard)

	require.NoError(t, err)
	assert.Equal(t, int64(100), o.ItemsPrice)
	assert.Equal(t, int64(50), o.ShippingPrice)
	assert.Equal(t, int64(18), o.TaxPrice)
	assert.Equal(t, int64(168), o.TotalAmount)
}

func TestService_Place_UsesCartPriceSnapshot(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)

	_, err := carts.AddItem(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)

	// A price change after the item went into the cart does not move
	// the order total; the cart snapshot is what the customer saw.
	seedProduct(t, st, "prod-1", "Headphones", 999, 10)

	o, err := service.Place(ctx, "user-1", testAddress(), order.PaymentUPI)

	require.NoError(t, err)
	assert.Equal(t, int64(600), o.ItemsPrice)
	assert.Equal(t, int64(300), o.Items[0].Price)
}

func TestService_Place_PublishesOrderPlaced(t *testing.T) {
	service, carts, st, pub := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)

	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)

	o, err := service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, o.ID, pub.keys[0])

	placed, ok := pub.events[0].(order.OrderPlaced)
	require.True(t, ok)
	assert.Equal(t, o.ID, placed.OrderID)
	assert.Equal(t, "user-1", placed.UserID)
	assert.Equal(t, o.TotalAmount, placed.TotalAmount)
	assert.Len(t, placed.Items, 1)
}

func TestService_Place_NilPublisher(t *testing.T) {
	st := store.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	carts := cart.NewService(st, st, log)
	service := order.NewService(st, st, carts, nil, log)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)

	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)

	_, err = service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)
	require.NoError(t, err)
}

func TestService_Place_EmptyCart(t *testing.T) {
	service, _, _, pub := newTestOrderService(t)
	ctx := context.Background()

	_, err := service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)

	assert.ErrorIs(t, err, order.ErrEmptyCart)
	assert.Empty(t, pub.events)
}

func TestService_Place_IncompleteAddress(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)
	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)

	addr := testAddress()
	addr.PostalCode = ""

	_, err = service.Place(ctx, "user-1", addr, order.PaymentCOD)

	assert.ErrorIs(t, err, order.ErrIncompleteAddress)
}

func TestService_Place_InvalidPaymentMethod(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)
	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)

	_, err = service.Place(ctx, "user-1", testAddress(), order.PaymentMethod("Barter"))

	assert.ErrorIs(t, err, order.ErrInvalidPaymentMethod)
}

func TestService_Place_InsufficientStock(t *testing.T) {
	service, carts, st, pub := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)

	_, err := carts.AddItem(ctx, "user-1", "prod-1", 4)
	require.NoError(t, err)

	// Stock drops after the item went into the cart; checkout re-checks
	// and rejects the whole order.
	st.SetStock("prod-1", 2)

	_, err = service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)

	var stockErr *catalog.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Headphones", stockErr.Name)
	assert.Equal(t, 4, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// No order was created and the cart is intact.
	orders, err := service.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, orders)

	c, err := carts.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
	assert.Empty(t, pub.events)
}

// ============================================
// Get Tests
// ============================================

func TestService_Get_Owner(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)
	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)

	placed, err := service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)
	require.NoError(t, err)

	got, err := service.Get(ctx, "user-1", placed.ID, false)

	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
}

func TestService_Get_OtherUser(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)
	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)

	placed, err := service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)
	require.NoError(t, err)

	_, err = service.Get(ctx, "user-2", placed.ID, false)
	assert.ErrorIs(t, err, order.ErrNotOwner)

	// Admins can read any order.
	got, err := service.Get(ctx, "user-2", placed.ID, true)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
}

func TestService_Get_NotFound(t *testing.T) {
	service, _, _, _ := newTestOrderService(t)

	_, err := service.Get(context.Background(), "user-1", "no-such-order", false)

	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

// ============================================
// ListByUser Tests
// ============================================

func TestService_ListByUser_NewestFirst(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 100)

	var ids []string
	for i := 0; i < 3; i++ {
		_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
		require.NoError(t, err)
		o, err := service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)
		require.NoError(t, err)
		ids = append(ids, o.ID)
		time.Sleep(2 * time.Millisecond)
	}

	orders, err := service.ListByUser(ctx, "user-1")

	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[1], orders[1].ID)
	assert.Equal(t, ids[0], orders[2].ID)
}

func TestService_ListByUser_OnlyOwnOrders(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 100)

	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)
	_, err = service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)
	require.NoError(t, err)

	orders, err := service.ListByUser(ctx, "user-2")

	require.NoError(t, err)
	assert.Empty(t, orders)
}

// ============================================
// UpdateStatus Tests
// ============================================

func TestService_UpdateStatus(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)
	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)

	placed, err := service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)
	require.NoError(t, err)

	o, err := service.UpdateStatus(ctx, placed.ID, order.StatusShipped)

	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, o.Status)

	got, err := service.Get(ctx, "user-1", placed.ID, false)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, got.Status)
}

func TestService_UpdateStatus_AnyDirection(t *testing.T) {
	service, carts, st, _ := newTestOrderService(t)
	ctx := context.Background()
	seedProduct(t, st, "prod-1", "Headphones", 300, 10)
	_, err := carts.AddItem(ctx, "user-1", "prod-1", 1)
	require.NoError(t, err)

	placed, err := service.Place(ctx, "user-1", testAddress(), order.PaymentCOD)
	require.NoError(t, err)

	// Statuses are validated as values, not as transitions.
	_, err = service.UpdateStatus(ctx, placed.ID, order.StatusDelivered)
	require.NoError(t, err)
	o, err := service.UpdateStatus(ctx, placed.ID, order.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, o.Status)
}

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	service, _, _, _ := newTestOrderService(t)

	_, err := service.UpdateStatus(context.Background(), "order-1", order.Status("lost"))

	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	service, _, _, _ := newTestOrderService(t)

	_, err := service.UpdateStatus(context.Background(), "no-such-order", order.StatusShipped)

	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}
