package catalog

import (
	"context"
	"fmt"
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortRating    Sort = "rating"
)

const (
	DefaultPageSize  = 12
	FeaturedPageSize = 8
)

// ProductQuery describes a filtered, sorted, paginated product listing.
// Zero values mean "no filter"; Page and PageSize are normalized by the
// service before they reach a store.
type ProductQuery struct {
	CategoryID string
	Search     string
	Featured   bool
	Sort       Sort
	Page       int
	PageSize   int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
	Total    int       `json:"total"`
}

// Store is the read-side document store contract the catalog needs.
type Store interface {
	GetProduct(ctx context.Context, id string) (*Product, bool, error)
	ListProducts(ctx context.Context, q ProductQuery) ([]Product, int, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// Service serves read-only catalog lookups.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Product(ctx context.Context, id string) (*Product, error) {
	p, ok, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *Service) Products(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	switch q.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortRating:
	default:
		q.Sort = SortNewest
	}

	products, total, err := s.store.ListProducts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	pages := (total + q.PageSize - 1) / q.PageSize
	if pages < 1 {
		pages = 1
	}

	return &ProductPage{
		Products: products,
		Page:     q.Page,
		Pages:    pages,
		Total:    total,
	}, nil
}

// Featured returns the products promoted on the landing page.
func (s *Service) Featured(ctx context.Context) ([]Product, error) {
	products, _, err := s.store.ListProducts(ctx, ProductQuery{
		Featured: true,
		Sort:     SortNewest,
		Page:     1,
		PageSize: FeaturedPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return products, nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
