package order

import (
	"errors"
	"time"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrIncompleteAddress    = errors.New("shipping address is incomplete")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrInvalidStatus        = errors.New("unknown order status")
	ErrNotOwner             = errors.New("order belongs to another user")
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentCard PaymentMethod = "Card"
	PaymentUPI  PaymentMethod = "UPI"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

type ShippingAddress struct {
	FullName   string `json:"full_name" bson:"full_name"`
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
	Phone      string `json:"phone" bson:"phone"`
}

// Complete reports whether every address field is present.
func (a ShippingAddress) Complete() bool {
	return a.FullName != "" && a.Address != "" && a.City != "" &&
		a.PostalCode != "" && a.Country != "" && a.Phone != ""
}

// Item is an immutable snapshot of a purchased line, captured at checkout
// and independent of the cart and product it came from.
type Item struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Name      string `json:"name" bson:"name"`
	Image     string `json:"image" bson:"image"`
	Price     int64  `json:"price" bson:"price"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Order is created atomically from a non-empty cart at checkout and is
// immutable afterwards except for Status. TotalAmount = ItemsPrice +
// ShippingPrice + TaxPrice, computed once at creation.
type Order struct {
	ID              string          `json:"id" bson:"_id"`
	UserID          string          `json:"user_id" bson:"user_id"`
	Items           []Item          `json:"items" bson:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address" bson:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method" bson:"payment_method"`
	ItemsPrice      int64           `json:"items_price" bson:"items_price"`
	ShippingPrice   int64           `json:"shipping_price" bson:"shipping_price"`
	TaxPrice        int64           `json:"tax_price" bson:"tax_price"`
	TotalAmount     int64           `json:"total_amount" bson:"total_amount"`
	Status          Status          `json:"status" bson:"status"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
}
