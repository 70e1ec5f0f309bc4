// Package pricing holds the order price arithmetic. The browser client
// mirrors this formula for guest carts, so the constants and rounding here
// are a compatibility contract, not an implementation detail.
package pricing

import "github.com/shopspring/decimal"

const (
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold int64 = 500
	// FlatShippingFee applies to orders at or under the threshold.
	FlatShippingFee int64 = 50
	// TaxRatePercent is the flat tax rate applied to the items subtotal.
	TaxRatePercent int64 = 18
)

// Breakdown is the priced parts of an order. TotalAmount is always the sum
// of the other three, computed once at checkout.
type Breakdown struct {
	ItemsPrice    int64 `json:"items_price"`
	ShippingPrice int64 `json:"shipping_price"`
	TaxPrice      int64 `json:"tax_price"`
	TotalAmount   int64 `json:"total_amount"`
}

// Shipping returns the shipping charge for an items subtotal.
func Shipping(itemsPrice int64) int64 {
	if itemsPrice > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Tax returns the tax charge for an items subtotal, rounded to the nearest
// currency unit.
func Tax(itemsPrice int64) int64 {
	rate := decimal.New(TaxRatePercent, -2)
	return decimal.NewFromInt(itemsPrice).Mul(rate).Round(0).IntPart()
}

// Quote computes the full breakdown for an items subtotal.
func Quote(itemsPrice int64) Breakdown {
	shipping := Shipping(itemsPrice)
	tax := Tax(itemsPrice)
	return Breakdown{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalAmount:   itemsPrice + shipping + tax,
	}
}
