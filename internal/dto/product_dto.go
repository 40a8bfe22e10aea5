package dto

import (
	"maps"

	"pdv/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProductInput is the product form as submitted. Stocks are not part of it:
// they come from the draft stock table held by the controller.
type ProductInput struct {
	Name     FormValue `json:"name"`
	Category FormValue `json:"category"`
	SKU      FormValue `json:"sku"`
	Barcode  FormValue `json:"barcode"`
	Unit     FormValue `json:"unit"`
	Price    FormValue `json:"price"`
	Cost     FormValue `json:"cost"`
	MinStock FormValue `json:"minStock"`
	Supplier FormValue `json:"supplier"`
	Notes    FormValue `json:"notes"`
	Status   FormValue `json:"status"`
}

type DraftStockRequest struct {
	Quantity FormValue `json:"quantity"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type ProductFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status" validate:"omitempty,oneof=active inactive"`
}

type MarginQuery struct {
	Price string `form:"price"`
	Cost  string `form:"cost"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ProductView is a detached copy of a product plus derived display flags.
type ProductView struct {
	model.Product
	LowStock bool `json:"lowStock"`
}

func NewProductView(p *model.Product) ProductView {
	cp := *p
	cp.Stocks = maps.Clone(p.Stocks)
	if cp.Stocks == nil {
		cp.Stocks = map[string]int{}
	}
	return ProductView{
		Product:  cp,
		LowStock: p.MinStock > 0 && p.Stock <= p.MinStock,
	}
}

type CategoryListResponse struct {
	Categories []string `json:"categories"`
	// Selected is the previously selected category if still present, else "".
	Selected string `json:"selected"`
}

// StockAlert flags a product at or below its minimum stock.
type StockAlert struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	TotalStock int    `json:"totalStock"`
	MinStock   int    `json:"minStock"`
}

// EditContext is the state of the product form between requests.
type EditContext struct {
	EditingID   string         `json:"editingId"`
	DraftStocks map[string]int `json:"draftStocks"`
}
