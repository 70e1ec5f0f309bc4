package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
)

// Handlers serves the catalog, cart and order routes.
type Handlers struct {
	catalog *catalog.Service
	carts   *cart.Service
	orders  *order.Service
	log     *slog.Logger
}

func NewHandlers(catalogSvc *catalog.Service, cartSvc *cart.Service, orderSvc *order.Service, log *slog.Logger) *Handlers {
	return &Handlers{
		catalog: catalogSvc,
		carts:   cartSvc,
		orders:  orderSvc,
		log:     log,
	}
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	result, err := h.catalog.Products(r.Context(), catalog.ProductQuery{
		CategoryID: q.Get("category"),
		Search:     q.Get("search"),
		Featured:   q.Get("featured") == "true",
		Sort:       catalog.Sort(q.Get("sort")),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		h.log.Error("list products failed", "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Featured(r.Context())
	if err != nil {
		h.log.Error("list featured products failed", "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/products/")
	p, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.log.Error("list categories failed", "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// Helper functions

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
