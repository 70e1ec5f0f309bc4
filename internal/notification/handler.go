package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/domain/user"
	"github.com/example/storefront/internal/email"
)

// Handler turns order.placed events into confirmation email. Missing
// users are logged and skipped; only transport failures propagate so the
// consumer can report them.
type Handler struct {
	emailService *email.Service
	users        user.Store
	log          *slog.Logger
}

func NewHandler(emailSvc *email.Service, users user.Store, log *slog.Logger) *Handler {
	return &Handler{
		emailService: emailSvc,
		users:        users,
		log:          log,
	}
}

// HandleMessage processes one event from the stream. The message key is
// the order id; the value is the event payload.
func (h *Handler) HandleMessage(ctx context.Context, key, value []byte) error {
	var event order.OrderPlaced
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("unmarshal order.placed: %w", err)
	}

	h.log.Info("processing order.placed", "order_id", event.OrderID, "user_id", event.UserID)

	u, exists, err := h.users.GetUser(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("get user %s: %w", event.UserID, err)
	}
	if !exists {
		h.log.Warn("user not found, skipping notification", "user_id", event.UserID)
		return nil
	}

	items := make([]email.OrderItem, len(event.Items))
	for i, item := range event.Items {
		items[i] = email.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	if err := h.emailService.SendOrderConfirmation(u.Email, event.OrderID, event.TotalAmount, items); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", u.Email, err)
	}

	h.log.Info("order confirmation sent", "order_id", event.OrderID, "email", u.Email)
	return nil
}
