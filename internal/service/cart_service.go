package service

import (
	"slices"
	"strings"
	"time"

	"pdv/internal/apierror"
	"pdv/internal/dto"
	"pdv/internal/ledger"
	"pdv/internal/model"
	"pdv/internal/pricing"

	"github.com/shopspring/decimal"
)

const (
	removedProductName   = "Produto removido"
	removedWarehouseName = "Depósito removido"
)

// CartService defines the cart and checkout contract.
type CartService interface {
	AddLine(st *model.State, productID, warehouseID string, qty dto.FormValue) error
	RemoveLine(st *model.State, productID, warehouseID string)
	Clear(st *model.State)
	ComputeTotals(st *model.State, discountInput decimal.Decimal) pricing.Totals
	View(st *model.State, discountInput decimal.Decimal) dto.CartView
	// ResolvePaymentMethod maps an empty choice to the default method and
	// rejects methods outside the configured list.
	ResolvePaymentMethod(method string) (string, error)
	PaymentMethods() []string
	Checkout(st *model.State, req dto.CheckoutRequest) (*model.Sale, error)
}

// CartOptions configures checkout. Now and NewID stamp each recorded sale;
// Now defaults to time.Now.
type CartOptions struct {
	PaymentMethods []string
	// ConsumeUnbilledStock decrements stock for cart lines dropped from the
	// sale because their product price is no longer positive.
	ConsumeUnbilledStock bool
	Now                  func() time.Time
	NewID                func() string
}

type cartService struct {
	opts CartOptions
}

// NewCartService returns the CartService for opts.
func NewCartService(opts CartOptions) CartService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &cartService{opts: opts}
}

func (s *cartService) AddLine(st *model.State, productID, warehouseID string, qty dto.FormValue) error {
	q := qty.Quantity()
	if q <= 0 {
		return apierror.Validation("Quantidade inválida.")
	}
	if productID == "" {
		return apierror.Validation("Selecione um produto.")
	}
	if warehouseID == "" {
		return apierror.Validation("Selecione um depósito.")
	}
	p := st.Product(productID)
	if p == nil {
		return apierror.Validation("Produto não encontrado.")
	}
	if !p.Active() {
		return apierror.Validation("Produto inativo.")
	}
	if st.Warehouse(warehouseID) == nil {
		return apierror.Validation("Depósito não encontrado.")
	}

	i := st.CartLineIndex(productID, warehouseID)
	current := 0
	if i >= 0 {
		current = st.Cart[i].Quantity
	}
	if q > ledger.Available(p, warehouseID)-current {
		return apierror.StockInsufficient("Estoque insuficiente.")
	}

	if i >= 0 {
		st.Cart[i].Quantity += q
		return nil
	}
	st.Cart = append(st.Cart, model.CartLine{ProductID: productID, WarehouseID: warehouseID, Quantity: q})
	return nil
}

func (s *cartService) RemoveLine(st *model.State, productID, warehouseID string) {
	if i := st.CartLineIndex(productID, warehouseID); i >= 0 {
		st.Cart = slices.Delete(st.Cart, i, i+1)
	}
}

func (s *cartService) Clear(st *model.State) {
	st.Cart = []model.CartLine{}
}

// ComputeTotals prices every line whose product still resolves; a missing
// product contributes zero.
func (s *cartService) ComputeTotals(st *model.State, discountInput decimal.Decimal) pricing.Totals {
	subtotal := decimal.Zero
	for _, line := range st.Cart {
		if p := st.Product(line.ProductID); p != nil {
			subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}
	return pricing.NewTotals(subtotal, discountInput)
}

func (s *cartService) View(st *model.State, discountInput decimal.Decimal) dto.CartView {
	lines := make([]dto.CartLineView, 0, len(st.Cart))
	for _, line := range st.Cart {
		v := dto.CartLineView{
			ProductID:     line.ProductID,
			WarehouseID:   line.WarehouseID,
			ProductName:   removedProductName,
			WarehouseName: removedWarehouseName,
			Quantity:      line.Quantity,
			UnitPrice:     decimal.Zero,
			LineTotal:     decimal.Zero,
		}
		if p := st.Product(line.ProductID); p != nil {
			v.ProductName = p.Name
			v.Unit = p.Unit
			v.UnitPrice = p.Price
			v.LineTotal = p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		} else {
			v.ProductMissing = true
		}
		if w := st.Warehouse(line.WarehouseID); w != nil {
			v.WarehouseName = w.Name
		} else {
			v.WarehouseMissing = true
		}
		lines = append(lines, v)
	}
	return dto.CartView{
		Lines:       lines,
		Totals:      s.ComputeTotals(st, discountInput),
		CanCheckout: len(st.Cart) > 0,
	}
}

func (s *cartService) PaymentMethods() []string {
	return slices.Clone(s.opts.PaymentMethods)
}

func (s *cartService) ResolvePaymentMethod(method string) (string, error) {
	method = strings.TrimSpace(method)
	if len(s.opts.PaymentMethods) == 0 {
		return method, nil
	}
	if method == "" {
		return s.opts.PaymentMethods[0], nil
	}
	if !slices.Contains(s.opts.PaymentMethods, method) {
		return "", apierror.Validation("Forma de pagamento inválida.")
	}
	return method, nil
}

// Checkout commits the cart as a sale: snapshot, totals, stock decrement,
// record, clear. Every rejection happens before the first mutation.
func (s *cartService) Checkout(st *model.State, req dto.CheckoutRequest) (*model.Sale, error) {
	if len(st.Cart) == 0 {
		return nil, apierror.Validation("Carrinho vazio.")
	}
	method, err := s.ResolvePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	items := make([]model.SaleItem, 0, len(st.Cart))
	subtotal := decimal.Zero
	for _, line := range st.Cart {
		p := st.Product(line.ProductID)
		if p == nil || !p.Price.IsPositive() {
			continue
		}
		item := model.SaleItem{
			ProductID:     line.ProductID,
			Name:          p.Name,
			WarehouseID:   line.WarehouseID,
			WarehouseName: removedWarehouseName,
			Quantity:      line.Quantity,
			Price:         p.Price,
		}
		if w := st.Warehouse(line.WarehouseID); w != nil {
			item.WarehouseName = w.Name
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.Subtotal())
	}
	totals := pricing.NewTotals(subtotal, req.Discount)

	// Mutation starts here.
	if s.opts.ConsumeUnbilledStock {
		for _, line := range st.Cart {
			if p := st.Product(line.ProductID); p != nil {
				ledger.Decrement(p, line.WarehouseID, line.Quantity)
			}
		}
	} else {
		for _, it := range items {
			if p := st.Product(it.ProductID); p != nil {
				ledger.Decrement(p, it.WarehouseID, it.Quantity)
			}
		}
	}

	sale := model.Sale{
		ID:            s.opts.NewID(),
		Date:          s.opts.Now().UTC(),
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Items:         items,
		PaymentMethod: method,
		Note:          strings.TrimSpace(req.Note),
	}
	st.Sales = slices.Insert(st.Sales, 0, sale)
	st.Cart = []model.CartLine{}
	return &st.Sales[0], nil
}
