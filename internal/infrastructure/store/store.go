// Package store provides the document store backends: MongoDB for the
// usual deployment, DynamoDB for the serverless one, and an in-memory
// store for tests and local development. Writes are atomic per document;
// nothing here coordinates across documents or across concurrent writers
// of the same cart.
package store

import (
	"context"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/domain/user"
)

// Collection names, shared by the Mongo and Dynamo backends.
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionCarts      = "carts"
	CollectionOrders     = "orders"
	CollectionUsers      = "users"
)

// Store is the full document store surface, the union of what each domain
// service consumes.
type Store interface {
	catalog.Store
	cart.Store
	order.Store
	user.Store
}

// Seeder is the write-side surface the seed command uses to load demo
// catalog data. Product and category writes are otherwise administrative
// and outside the API.
type Seeder interface {
	CreateProduct(ctx context.Context, p *catalog.Product) error
	CreateCategory(ctx context.Context, c *catalog.Category) error
}
