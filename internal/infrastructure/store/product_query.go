package store

import (
	"sort"
	"strings"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
)

// applyProductQuery filters, sorts and paginates products in memory. The
// memory and Dynamo backends share it; Mongo pushes the same semantics
// into the query instead. Sorting is stable with a secondary order on ID,
// so a given page/sort/filter combination is deterministic for unchanged
// data.
func applyProductQuery(products []catalog.Product, q catalog.ProductQuery) ([]catalog.Product, int) {
	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if q.Featured && !p.Featured {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, q.Sort)

	total := len(filtered)
	start := (q.Page - 1) * q.PageSize
	if start >= total {
		return []catalog.Product{}, total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total
}

func sortProducts(products []catalog.Product, by catalog.Sort) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch by {
		case catalog.SortPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case catalog.SortPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case catalog.SortRating:
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
		default: // newest
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	})
}

func sortCategories(categories []catalog.Category) {
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
}

func sortOrdersNewestFirst(orders []order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID < orders[j].ID
	})
}
