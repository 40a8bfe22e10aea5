package model

import "github.com/shopspring/decimal"

// Status: "active" | "inactive". Inactive products stay editable but are
// excluded from new sales.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Product is a catalog entry with per-warehouse stock.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	SKU      string          `json:"sku"`
	Barcode  string          `json:"barcode"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	// Margin is derived from (Price - Cost) / Price * 100, zero when Price <= 0.
	Margin decimal.Decimal `json:"margin"`
	// Stock caches the sum of Stocks. Stocks is the source of truth.
	Stock    int            `json:"stock"`
	Stocks   map[string]int `json:"stocks"`
	MinStock int            `json:"minStock"`
	Supplier string         `json:"supplier"`
	Notes    string         `json:"notes"`
	Status   Status         `json:"status"`
}

func (p *Product) Active() bool { return p.Status != StatusInactive }
