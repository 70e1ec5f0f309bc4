package store

import (
	"context"
	"sync"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/domain/user"
)

// MemoryStore is an in-process document store for tests and local
// development. Values are copied on the way in and out so callers cannot
// mutate stored documents through retained pointers.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[string]catalog.Product
	categories map[string]catalog.Category
	carts      map[string]cart.Cart // keyed by cart ID
	orders     map[string]order.Order
	users      map[string]user.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[string]catalog.Product),
		categories: make(map[string]catalog.Category),
		carts:      make(map[string]cart.Cart),
		orders:     make(map[string]order.Order),
		users:      make(map[string]user.User),
	}
}

// Products

func (m *MemoryStore) GetProduct(ctx context.Context, id string) (*catalog.Product, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (m *MemoryStore) ListProducts(ctx context.Context, q catalog.ProductQuery) ([]catalog.Product, int, error) {
	m.mu.RLock()
	all := make([]catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		all = append(all, p)
	}
	m.mu.RUnlock()

	page, total := applyProductQuery(all, q)
	return page, total, nil
}

func (m *MemoryStore) CreateProduct(ctx context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = *p
	return nil
}

// SetStock overwrites a product's stock. Test helper standing in for the
// inventory tooling that owns product writes in production.
func (m *MemoryStore) SetStock(id string, stock int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		p.Stock = stock
		m.products[id] = p
	}
}

// Categories

func (m *MemoryStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]catalog.Category, 0, len(m.categories))
	for _, c := range m.categories {
		all = append(all, c)
	}
	sortCategories(all)
	return all, nil
}

func (m *MemoryStore) CreateCategory(ctx context.Context, c *catalog.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = *c
	return nil
}

// Carts

func (m *MemoryStore) GetCartByUser(ctx context.Context, userID string) (*cart.Cart, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.carts {
		if c.UserID == userID {
			out := c
			out.Items = append([]cart.Item(nil), c.Items...)
			return &out, true, nil
		}
	}
	return nil, false, nil
}

func (m *MemoryStore) SaveCart(ctx context.Context, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *c
	stored.Items = append([]cart.Item(nil), c.Items...)
	m.carts[c.ID] = stored
	return nil
}

// Orders

func (m *MemoryStore) CreateOrder(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *o
	stored.Items = append([]order.Item(nil), o.Items...)
	m.orders[o.ID] = stored
	return nil
}

func (m *MemoryStore) GetOrder(ctx context.Context, id string) (*order.Order, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, false, nil
	}
	out := o
	out.Items = append([]order.Item(nil), o.Items...)
	return &out, true, nil
}

func (m *MemoryStore) ListOrdersByUser(ctx context.Context, userID string) ([]order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]order.Order, 0)
	for _, o := range m.orders {
		if o.UserID == userID {
			out := o
			out.Items = append([]order.Item(nil), o.Items...)
			orders = append(orders, out)
		}
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (m *MemoryStore) SaveOrder(ctx context.Context, o *order.Order) error {
	return m.CreateOrder(ctx, o)
}

// Users

func (m *MemoryStore) CreateUser(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id string) (*user.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, false, nil
	}
	return &u, true, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, true, nil
		}
	}
	return nil, false, nil
}
