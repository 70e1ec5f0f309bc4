package order

import "time"

// Event types published to the event stream after checkout.
const (
	EventOrderPlaced = "order.placed"
)

// OrderPlaced announces a durably created order. The notifier resolves the
// user's email from the document store, so the event carries ids, not PII.
type OrderPlaced struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	Items       []Item    `json:"items"`
	TotalAmount int64     `json:"total_amount"`
	PlacedAt    time.Time `json:"placed_at"`
}

// EventName tags the message so consumers can route without decoding.
func (OrderPlaced) EventName() string { return EventOrderPlaced }
