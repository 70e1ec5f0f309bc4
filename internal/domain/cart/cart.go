package cart

import (
	"errors"
	"time"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("item not found in cart")
)

// Item is one pending purchase line. Name, Image and Price are snapshots
// taken from the product when the line was added; a later product price
// change does not alter an existing line until it is touched again.
type Item struct {
	ID        string `json:"id" bson:"id"`
	ProductID string `json:"product_id" bson:"product_id"`
	Name      string `json:"name" bson:"name"`
	Image     string `json:"image" bson:"image"`
	Price     int64  `json:"price" bson:"price"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart is the per-user collection of pending purchase lines. TotalAmount
// is derived: it always equals the sum of Price * Quantity over Items and
// is recomputed on every mutation, never set independently.
type Cart struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Items       []Item    `json:"items" bson:"items"`
	TotalAmount int64     `json:"total_amount" bson:"total_amount"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (c *Cart) recomputeTotal() {
	var total int64
	for _, it := range c.Items {
		total += it.Price * int64(it.Quantity)
	}
	c.TotalAmount = total
}

// findItem returns the index of the line with the given id, or -1.
func (c *Cart) findItem(itemID string) int {
	for i, it := range c.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}
