package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/domain/user"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps a service error to a status code. Anything not
// recognized is a collaborator failure and becomes an opaque 500; the
// handler is expected to have logged it.
func respondDomainError(w http.ResponseWriter, err error) {
	var stockErr *catalog.StockError
	switch {
	case errors.As(err, &stockErr):
		respondError(w, stockErr.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound):
		respondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrIncompleteAddress),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, auth.ErrPasswordTooShort):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, user.ErrInvalidCredentials):
		respondError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, user.ErrEmailTaken):
		respondError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, order.ErrNotOwner):
		respondError(w, "forbidden", http.StatusForbidden)
	default:
		respondError(w, "internal server error", http.StatusInternalServerError)
	}
}
