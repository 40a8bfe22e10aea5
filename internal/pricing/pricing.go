// Package pricing holds the pure money rules shared by the catalog, the cart
// and the store normalizer.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ComputeMargin returns (price-cost)/price*100, or zero when price <= 0.
// A cost above price yields a negative margin.
func ComputeMargin(price, cost decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(price).Mul(hundred)
}

// ClampDiscount bounds discount to [0, subtotal].
func ClampDiscount(discount, subtotal decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// Totals is the subtotal/discount/total triple shown under the cart and
// recorded on a sale.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// NewTotals clamps discountInput against subtotal and derives the total.
func NewTotals(subtotal, discountInput decimal.Decimal) Totals {
	d := ClampDiscount(discountInput, subtotal)
	return Totals{Subtotal: subtotal, Discount: d, Total: subtotal.Sub(d)}
}
