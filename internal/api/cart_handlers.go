package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/storefront/internal/api/middleware"
)

// AddToCartRequest is the add-item body. A missing quantity means one.
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest is the set-quantity body.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	c, err := h.carts.Get(r.Context(), userID)
	if err != nil {
		h.log.Error("get cart failed", "user_id", userID, "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	c, err := h.carts.AddItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	itemID := extractPathParam(r.URL.Path, "/api/cart/")

	var req UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.carts.SetQuantity(r.Context(), userID, itemID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	itemID := extractPathParam(r.URL.Path, "/api/cart/")

	c, err := h.carts.RemoveItem(r.Context(), userID, itemID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if _, err := h.carts.Clear(r.Context(), userID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
