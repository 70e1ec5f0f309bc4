package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/domain/user"
)

// PlaceOrderRequest is the checkout body.
type PlaceOrderRequest struct {
	ShippingAddress order.ShippingAddress `json:"shipping_address"`
	PaymentMethod   order.PaymentMethod   `json:"payment_method"`
}

// UpdateOrderStatusRequest is the admin status update body.
type UpdateOrderStatusRequest struct {
	Status order.Status `json:"status"`
}

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.orders.Place(r.Context(), userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.Error("list orders failed", "user_id", userID, "error", err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/orders/")

	claims, _ := middleware.GetUserFromContext(r.Context())
	admin := claims != nil && claims.Role == user.RoleAdmin

	o, err := h.orders.Get(r.Context(), claims.UserID, id, admin)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/orders/")
	id = strings.TrimSuffix(id, "/status")

	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}
