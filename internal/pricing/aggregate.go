package pricing

import "github.com/slicehaus/slicehaus-backend/pkg/money"

// Rates are the storefront's aggregation constants.
type Rates struct {
	TaxRate     float64
	DeliveryFee float64
}

// DefaultRates mirrors the production configuration defaults.
func DefaultRates() Rates {
	return Rates{TaxRate: 0.08, DeliveryFee: 4.99}
}

// Line is the minimal shape aggregation needs: the unit price of one
// pie (surcharges included, quantity excluded) and how many were ordered.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Totals is the derived money block on a cart or order.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// Aggregate reduces priced lines into order totals. The delivery fee
// only applies to non-empty carts. Each output field is rounded to
// cents exactly once, here; intermediate math keeps full precision so
// the client- and server-side call sites can never disagree.
func Aggregate(lines []Line, rates Rates) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	tax := subtotal * rates.TaxRate
	deliveryFee := 0.0
	if subtotal > 0 {
		deliveryFee = rates.DeliveryFee
	}
	total := subtotal + tax + deliveryFee

	return Totals{
		Subtotal:    money.Round2(subtotal),
		Tax:         money.Round2(tax),
		DeliveryFee: money.Round2(deliveryFee),
		Total:       money.Round2(total),
	}
}
