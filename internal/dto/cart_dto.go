package dto

import (
	"pdv/internal/pricing"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddCartLineRequest struct {
	ProductID   string    `json:"productId"   validate:"required"`
	WarehouseID string    `json:"warehouseId" validate:"required"`
	Quantity    FormValue `json:"quantity"`
}

// CheckoutFormRequest updates the discount/payment/note fields under the cart.
// Nil fields are left untouched.
type CheckoutFormRequest struct {
	Discount      *FormValue `json:"discount"`
	PaymentMethod *string    `json:"paymentMethod"`
	Note          *string    `json:"note"`
}

// CheckoutRequest is what the cart engine needs to commit a sale.
type CheckoutRequest struct {
	Discount      decimal.Decimal
	PaymentMethod string
	Note          string
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CartLineView resolves a cart line for display. Missing references render
// with placeholder names and contribute zero to the subtotal.
type CartLineView struct {
	ProductID        string          `json:"productId"`
	WarehouseID      string          `json:"warehouseId"`
	ProductName      string          `json:"productName"`
	WarehouseName    string          `json:"warehouseName"`
	Unit             string          `json:"unit"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	LineTotal        decimal.Decimal `json:"lineTotal"`
	ProductMissing   bool            `json:"productMissing"`
	WarehouseMissing bool            `json:"warehouseMissing"`
}

type CheckoutForm struct {
	Discount       decimal.Decimal `json:"discount"`
	PaymentMethod  string          `json:"paymentMethod"`
	Note           string          `json:"note"`
	PaymentMethods []string        `json:"paymentMethods"`
}

type CartView struct {
	Lines       []CartLineView `json:"lines"`
	Totals      pricing.Totals `json:"totals"`
	Form        CheckoutForm   `json:"form"`
	CanCheckout bool           `json:"canCheckout"`
}
