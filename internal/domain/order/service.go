package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/pricing"
)

// Store is the document store contract for orders.
type Store interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id string) (*Order, bool, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)
	SaveOrder(ctx context.Context, o *Order) error
}

// ProductStore is the slice of the catalog checkout needs to re-validate
// stock and snapshot product details.
type ProductStore interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, bool, error)
}

// Publisher emits domain events after checkout. A nil Publisher disables
// publishing.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Service converts carts into immutable orders.
type Service struct {
	orders   Store
	products ProductStore
	carts    *cart.Service
	events   Publisher
	log      *slog.Logger
}

func NewService(orders Store, products ProductStore, carts *cart.Service, events Publisher, log *slog.Logger) *Service {
	return &Service{orders: orders, products: products, carts: carts, events: events, log: log}
}

// Place checks out the user's cart: re-validates stock per line, snapshots
// the lines, prices the order and persists it with status pending. The
// whole order is rejected on the first line that fails; there is no
// partial order. On success the cart is cleared; order creation is the
// operation of record, so a clear failure is logged, never unwound.
// Product stock is checked but never decremented here.
func (s *Service) Place(ctx context.Context, userID string, address ShippingAddress, method PaymentMethod) (*Order, error) {
	if !address.Complete() {
		return nil, ErrIncompleteAddress
	}
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, 0, len(c.Items))
	var itemsPrice int64
	for _, line := range c.Items {
		p, ok, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product %s: %w", line.ProductID, err)
		}
		if !ok {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, catalog.ErrProductNotFound)
		}
		if p.Stock < line.Quantity {
			return nil, &catalog.StockError{ProductID: p.ID, Name: p.Name, Requested: line.Quantity, Available: p.Stock}
		}
		items = append(items, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
		itemsPrice += line.Price * int64(line.Quantity)
	}

	quote := pricing.Quote(itemsPrice)

	o := &Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   method,
		ItemsPrice:      quote.ItemsPrice,
		ShippingPrice:   quote.ShippingPrice,
		TaxPrice:        quote.TaxPrice,
		TotalAmount:     quote.TotalAmount,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.orders.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if _, err := s.carts.Clear(ctx, userID); err != nil {
		s.log.Error("order created but cart not cleared", "order_id", o.ID, "user_id", userID, "error", err)
	}

	s.publishPlaced(ctx, o)

	s.log.Info("order placed", "order_id", o.ID, "user_id", userID, "total", o.TotalAmount)
	return o, nil
}

// Get returns an order, restricted to its owner unless admin is set.
func (s *Service) Get(ctx context.Context, userID, orderID string, admin bool) (*Order, error) {
	o, ok, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if !ok {
		return nil, ErrOrderNotFound
	}
	if o.UserID != userID && !admin {
		return nil, ErrNotOwner
	}
	return o, nil
}

// ListByUser returns the user's order history, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets an order's lifecycle status. It validates the status
// value but not the transition; the administrative process owns the
// lifecycle and this core stays out of its way.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, ok, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if !ok {
		return nil, ErrOrderNotFound
	}

	o.Status = status
	if err := s.orders.SaveOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.log.Info("order status updated", "order_id", o.ID, "status", status)
	return o, nil
}

func (s *Service) publishPlaced(ctx context.Context, o *Order) {
	if s.events == nil {
		return
	}
	event := OrderPlaced{
		OrderID:     o.ID,
		UserID:      o.UserID,
		Items:       o.Items,
		TotalAmount: o.TotalAmount,
		PlacedAt:    o.CreatedAt,
	}
	if err := s.events.Publish(ctx, o.ID, event); err != nil {
		s.log.Error("failed to publish order.placed", "order_id", o.ID, "error", err)
	}
}
