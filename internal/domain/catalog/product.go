package catalog

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// Product is a catalog entry. Price fields are integer minor currency
// units. Stock is checked, never decremented, by the cart and order flows.
type Product struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description" bson:"description"`
	Image         string    `json:"image" bson:"image"`
	Price         int64     `json:"price" bson:"price"`
	OriginalPrice int64     `json:"original_price,omitempty" bson:"original_price,omitempty"`
	Stock         int       `json:"stock" bson:"stock"`
	Rating        float64   `json:"rating" bson:"rating"`
	NumReviews    int       `json:"num_reviews" bson:"num_reviews"`
	CategoryID    string    `json:"category_id" bson:"category_id"`
	Featured      bool      `json:"featured" bson:"featured"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

type Category struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Image string `json:"image" bson:"image"`
}

// StockError reports a requested quantity exceeding a product's available
// stock. It names the offending product so the caller can surface it.
type StockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("not enough stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}
