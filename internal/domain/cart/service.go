package cart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/storefront/internal/domain/catalog"
)

// Store is the document store contract for carts. SaveCart is an upsert by
// cart identity with no version check; concurrent writers race and the
// last write wins, matching the per-document atomicity the store offers.
type Store interface {
	GetCartByUser(ctx context.Context, userID string) (*Cart, bool, error)
	SaveCart(ctx context.Context, c *Cart) error
}

// ProductStore is the slice of the catalog the cart needs for price
// snapshots and stock checks.
type ProductStore interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, bool, error)
}

// Service owns the per-user cart: add, set quantity, remove, clear, with
// the derived total recomputed on every mutation.
type Service struct {
	carts    Store
	products ProductStore
	log      *slog.Logger
}

func NewService(carts Store, products ProductStore, log *slog.Logger) *Service {
	return &Service{carts: carts, products: products, log: log}
}

// Get returns the user's cart, creating an empty one on first use.
func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	c, ok, err := s.carts.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if ok {
		return c, nil
	}

	c = &Cart{
		ID:        uuid.New().String(),
		UserID:    userID,
		Items:     []Item{},
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.carts.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	s.log.Info("cart created", "cart_id", c.ID, "user_id", userID)
	return c, nil
}

// AddItem puts quantity units of a product into the cart. If the product
// is already in the cart its line quantity grows and its price snapshot is
// refreshed to the product's current price; otherwise a new line is
// appended, preserving insertion order.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, ok, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	if p.Stock < quantity {
		return nil, &catalog.StockError{ProductID: p.ID, Name: p.Name, Requested: quantity, Available: p.Stock}
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].Price = p.Price
			c.Items[i].Name = p.Name
			c.Items[i].Image = p.Image
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, Item{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price,
			Quantity:  quantity,
		})
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQuantity replaces a line's quantity. Quantity-to-zero is the caller's
// business to route through RemoveItem; anything below 1 is rejected.
func (s *Service) SetQuantity(ctx context.Context, userID, itemID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, ok, err := s.carts.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !ok {
		return nil, ErrItemNotFound
	}

	i := c.findItem(itemID)
	if i < 0 {
		return nil, ErrItemNotFound
	}

	p, ok, err := s.products.GetProduct(ctx, c.Items[i].ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", c.Items[i].ProductID, err)
	}
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	if p.Stock < quantity {
		return nil, &catalog.StockError{ProductID: p.ID, Name: p.Name, Requested: quantity, Available: p.Stock}
	}

	c.Items[i].Quantity = quantity
	c.Items[i].Price = p.Price

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem deletes a line if present. Removing an absent line is a
// no-op, not an error, so retries and double-clicks are harmless.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) (*Cart, error) {
	c, ok, err := s.carts.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if !ok {
		return s.Get(ctx, userID)
	}

	i := c.findItem(itemID)
	if i < 0 {
		return c, nil
	}

	c.Items = append(c.Items[:i], c.Items[i+1:]...)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart. The cart document itself survives.
func (s *Service) Clear(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.Items = []Item{}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	c.recomputeTotal()
	c.UpdatedAt = time.Now().UTC()
	if err := s.carts.SaveCart(ctx, c); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
