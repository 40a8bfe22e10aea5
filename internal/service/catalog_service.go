package service

import (
	"slices"
	"strings"

	"pdv/internal/apierror"
	"pdv/internal/dto"
	"pdv/internal/ledger"
	"pdv/internal/model"
	"pdv/internal/pricing"

	"github.com/shopspring/decimal"
)

// CatalogService defines the product catalog contract. All operations act on
// the state they are handed; persistence is the controller's job.
type CatalogService interface {
	ComputeMargin(price, cost decimal.Decimal) decimal.Decimal
	// Upsert creates a product (editingID == "") or updates the one being
	// edited. draft replaces the product's per-warehouse stock.
	Upsert(st *model.State, editingID string, in dto.ProductInput, draft map[string]int) (*model.Product, error)
	Remove(st *model.State, productID string) error
	Filter(products []model.Product, f dto.ProductFilter) []model.Product
	ListCategories(products []model.Product) []string
	SelectCategory(categories []string, previous string) string
	StockAlerts(st *model.State) []dto.StockAlert
	Saleable(st *model.State) []model.Product
}

type catalogService struct {
	newID func() string
}

// NewCatalogService returns a CatalogService that ids new products with newID.
func NewCatalogService(newID func() string) CatalogService {
	return &catalogService{newID: newID}
}

func (s *catalogService) ComputeMargin(price, cost decimal.Decimal) decimal.Decimal {
	return pricing.ComputeMargin(price, cost)
}

func (s *catalogService) Upsert(st *model.State, editingID string, in dto.ProductInput, draft map[string]int) (*model.Product, error) {
	name := in.Name.Trimmed()
	if name == "" {
		return nil, apierror.Validation("Informe o nome do produto.")
	}
	price, ok := in.Price.Decimal()
	if !ok {
		return nil, apierror.Validation("Preço inválido.")
	}
	if price.IsNegative() {
		return nil, apierror.Validation("O preço não pode ser negativo.")
	}
	cost := in.Cost.DecimalOrZero()
	if cost.IsNegative() {
		cost = decimal.Zero
	}
	minStock, ok := in.MinStock.BoundedQuantity()
	if !ok {
		return nil, apierror.Validation("Estoque mínimo inválido.")
	}

	var target *model.Product
	if editingID != "" {
		target = st.Product(editingID)
		if target == nil {
			return nil, apierror.NotFound("Produto não encontrado.")
		}
	}

	// Draft entries for warehouses that no longer exist are discarded.
	stocks := make(map[string]int, len(draft))
	for w, q := range draft {
		if st.Warehouse(w) != nil {
			stocks[w] = max(q, 0)
		}
	}

	if target != nil {
		for _, line := range st.Cart {
			if line.ProductID == target.ID && stocks[line.WarehouseID] < line.Quantity {
				return nil, apierror.StockInsufficient("Estoque insuficiente: há mais unidades no carrinho do que o novo estoque.")
			}
		}
	}

	unit := in.Unit.Trimmed()
	if unit == "" {
		unit = "un"
	}
	status := model.StatusActive
	if in.Status.Trimmed() == string(model.StatusInactive) {
		status = model.StatusInactive
	}

	if target == nil {
		st.Products = append(st.Products, model.Product{ID: s.newID()})
		target = &st.Products[len(st.Products)-1]
	}
	target.Name = name
	target.Category = in.Category.Trimmed()
	target.SKU = in.SKU.Trimmed()
	target.Barcode = in.Barcode.Trimmed()
	target.Unit = unit
	target.Price = price
	target.Cost = cost
	target.Margin = pricing.ComputeMargin(price, cost)
	target.MinStock = minStock
	target.Supplier = in.Supplier.Trimmed()
	target.Notes = in.Notes.Trimmed()
	target.Status = status
	ledger.Replace(target, stocks)
	return target, nil
}

func (s *catalogService) Remove(st *model.State, productID string) error {
	i := slices.IndexFunc(st.Products, func(p model.Product) bool { return p.ID == productID })
	if i < 0 {
		return apierror.NotFound("Produto não encontrado.")
	}
	if slices.ContainsFunc(st.Cart, func(l model.CartLine) bool { return l.ProductID == productID }) {
		return apierror.ReferentialGuard("Remova o produto do carrinho antes de excluir.")
	}
	st.Products = slices.Delete(st.Products, i, i+1)
	return nil
}

// Filter matches the search text case-insensitively against name, SKU and
// barcode, then narrows by exact category and status. Order is preserved.
func (s *catalogService) Filter(products []model.Product, f dto.ProductFilter) []model.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) &&
			!strings.Contains(strings.ToLower(p.Barcode), search) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ListCategories returns the distinct non-empty categories in first-seen order.
func (s *catalogService) ListCategories(products []model.Product) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// SelectCategory keeps the previous filter selection only while it still exists.
func (s *catalogService) SelectCategory(categories []string, previous string) string {
	if slices.Contains(categories, previous) {
		return previous
	}
	return ""
}

func (s *catalogService) StockAlerts(st *model.State) []dto.StockAlert {
	out := []dto.StockAlert{}
	for i := range st.Products {
		p := &st.Products[i]
		if isLowStock(p) {
			out = append(out, dto.StockAlert{ProductID: p.ID, Name: p.Name, TotalStock: p.Stock, MinStock: p.MinStock})
		}
	}
	return out
}

// Saleable lists the active products offered on the sale form. Stock is
// checked per warehouse when a line is added.
func (s *catalogService) Saleable(st *model.State) []model.Product {
	out := []model.Product{}
	for _, p := range st.Products {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

func isLowStock(p *model.Product) bool {
	return p.MinStock > 0 && p.Stock <= p.MinStock
}
