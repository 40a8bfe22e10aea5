package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable record of a completed checkout.
// Sales are NEVER modified or deleted once recorded.
type Sale struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Items         []SaleItem      `json:"items"`
	PaymentMethod string          `json:"paymentMethod"`
	Note          string          `json:"note"`
}

// SaleItem snapshots names and price at sale time so later renames or
// deletions do not rewrite history.
type SaleItem struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	WarehouseID   string          `json:"warehouseId"`
	WarehouseName string          `json:"warehouseName"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
}

func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
