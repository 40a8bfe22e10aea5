package handler

import (
	"context"

	"pdv/internal/dto"
	"pdv/internal/model"

	"github.com/shopspring/decimal"
)

// Controller is the part of service.Controller the API needs.
type Controller interface {
	Dispatch(ctx context.Context, cmd dto.Command) (*dto.Result, error)
	Snapshot() *model.State
	Products(f dto.ProductFilter) []dto.ProductView
	Categories(selected string) dto.CategoryListResponse
	StockAlerts() []dto.StockAlert
	SaleableProducts() []dto.ProductView
	Margin(price, cost dto.FormValue) decimal.Decimal
	EditContext() dto.EditContext
	Warehouses() []model.Warehouse
	Cart() dto.CartView
	Sales() []model.Sale
	Sale(id string) (*model.Sale, error)
}
