package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"pdv/internal/apierror"
	"pdv/internal/dto"
	"pdv/internal/model"
	"pdv/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const persistWarning = "Não foi possível salvar os dados. As alterações desta sessão podem ser perdidas."

// SaleNotifier receives checkout side effects. Calls happen after the
// controller lock is released and failures are only logged.
type SaleNotifier interface {
	SaleRecorded(ctx context.Context, sale model.Sale) error
	StockLow(ctx context.Context, alert dto.StockAlert) error
}

// ControllerOptions wires the controller; a nil Now or NewID falls back to
// time.Now and uuid.NewString.
type ControllerOptions struct {
	PaymentMethods       []string
	ConsumeUnbilledStock bool
	Notifier             SaleNotifier
	Now                  func() time.Time
	NewID                func() string
}

// Controller is the single owner of the in-memory state and the editing
// context. Commands are serialized; every mutation is persisted before the
// command returns.
type Controller struct {
	mu    sync.Mutex
	store *store.Store
	state *model.State

	catalog    CatalogService
	warehouses WarehouseService
	cart       CartService
	notifier   SaleNotifier

	editingID     string
	draft         map[string]int
	discount      decimal.Decimal
	note          string
	paymentMethod string
	closed        bool
}

// NewController opens the store. A failure to persist the startup migration
// is logged; the controller is usable either way.
func NewController(ctx context.Context, s *store.Store, opts ControllerOptions) *Controller {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	st, err := s.Open(ctx)
	if err != nil {
		log.Error().Err(err).Msg("controller: could not persist migrated state")
	}
	cart := NewCartService(CartOptions{
		PaymentMethods:       opts.PaymentMethods,
		ConsumeUnbilledStock: opts.ConsumeUnbilledStock,
		Now:                  opts.Now,
		NewID:                opts.NewID,
	})
	method, _ := cart.ResolvePaymentMethod("")
	return &Controller{
		store:         s,
		state:         st,
		catalog:       NewCatalogService(opts.NewID),
		warehouses:    NewWarehouseService(opts.NewID),
		cart:          cart,
		notifier:      opts.Notifier,
		draft:         map[string]int{},
		discount:      decimal.Zero,
		paymentMethod: method,
	}
}

// checkoutEvents are delivered to the notifier once the lock is released.
type checkoutEvents struct {
	sale   *model.Sale
	alerts []dto.StockAlert
}

// Dispatch runs one command.
func (c *Controller) Dispatch(ctx context.Context, cmd dto.Command) (*dto.Result, error) {
	res, events, err := c.dispatch(ctx, cmd)
	if err != nil {
		log.Debug().Str("action", string(cmd.Action())).Str("kind", string(apierror.KindOf(err))).
			Msg(err.Error())
		return nil, err
	}
	if events != nil {
		c.notify(ctx, events)
	}
	return res, nil
}

func (c *Controller) dispatch(ctx context.Context, cmd dto.Command) (*dto.Result, *checkoutEvents, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, nil, apierror.New("Controlador encerrado.")
	}

	res := &dto.Result{Action: cmd.Action()}
	switch cmd := cmd.(type) {
	case dto.BeginEdit:
		p := c.state.Product(cmd.ProductID)
		if p == nil {
			return nil, nil, apierror.NotFound("Produto não encontrado.")
		}
		c.editingID = p.ID
		c.draft = maps.Clone(p.Stocks)
		if c.draft == nil {
			c.draft = map[string]int{}
		}
		v := dto.NewProductView(p)
		res.Product = &v
		res.Edit = c.editContext()
		res.Rerender = []dto.View{dto.ViewProductForm}

	case dto.CancelEdit:
		c.resetEdit()
		res.Edit = c.editContext()
		res.Rerender = []dto.View{dto.ViewProductForm}

	case dto.SetDraftStock:
		if c.state.Warehouse(cmd.WarehouseID) == nil {
			return nil, nil, apierror.NotFound("Depósito não encontrado.")
		}
		q, ok := cmd.Quantity.BoundedQuantity()
		if !ok {
			return nil, nil, apierror.Validation("Quantidade inválida.")
		}
		c.draft[cmd.WarehouseID] = q
		res.Edit = c.editContext()
		res.Rerender = []dto.View{dto.ViewProductForm}

	case dto.SaveProduct:
		p, err := c.catalog.Upsert(c.state, c.editingID, cmd.Input, c.draft)
		if err != nil {
			return nil, nil, err
		}
		v := dto.NewProductView(p)
		res.Product = &v
		c.resetEdit()
		res.Warning = c.persist(ctx)
		res.Rerender = []dto.View{dto.ViewProducts, dto.ViewProductForm, dto.ViewCart}

	case dto.RemoveProduct:
		if err := c.catalog.Remove(c.state, cmd.ProductID); err != nil {
			return nil, nil, err
		}
		if c.editingID == cmd.ProductID {
			c.resetEdit()
		}
		res.Warning = c.persist(ctx)
		res.Rerender = []dto.View{dto.ViewProducts, dto.ViewProductForm, dto.ViewCart}

	case dto.AddWarehouse:
		w, err := c.warehouses.Add(c.state, cmd.Name)
		if err != nil {
			return nil, nil, err
		}
		cp := *w
		res.Warehouse = &cp
		res.Warning = c.persist(ctx)
		res.Rerender = []dto.View{dto.ViewWarehouses, dto.ViewProductForm, dto.ViewCart}

	case dto.RenameWarehouse:
		w, err := c.warehouses.Rename(c.state, cmd.WarehouseID, cmd.Name)
		if err != nil {
			return nil, nil, err
		}
		cp := *w
		res.Warehouse = &cp
		res.Warning = c.persist(ctx)
		res.Rerender = []dto.View{dto.ViewWarehouses, dto.ViewProducts, dto.ViewCart}

	case dto.RemoveWarehouse:
		if err := c.warehouses.Remove(c.state, cmd.WarehouseID); err != nil {
			return nil, nil, err
		}
		delete(c.draft, cmd.WarehouseID)
		res.Warning = c.persist(ctx)
		res.Rerender = []dto.View{dto.ViewWarehouses, dto.ViewProducts, dto.ViewProductForm, dto.ViewCart}

	case dto.AddCartLine:
		if err := c.cart.AddLine(c.state, cmd.ProductID, cmd.WarehouseID, cmd.Quantity); err != nil {
			return nil, nil, err
		}
		res.Warning = c.persist(ctx)
		res.Rerender = []dto.View{dto.ViewCart}

	case dto.RemoveCartLine:
		c.cart.RemoveLine(c.state, cmd.ProductID, cmd.WarehouseID)
		res.Warning = c.persist(ctx)
		res.Rerender = []dto.View{dto.ViewCart}

	case dto.ClearCart:
		c.cart.Clear(c.state)
		res.Warning = c.persist(ctx)
		res.Rerender = []dto.View{dto.ViewCart}

	case dto.UpdateCheckoutForm:
		method := c.paymentMethod
		if cmd.Form.PaymentMethod != nil {
			m, err := c.cart.ResolvePaymentMethod(*cmd.Form.PaymentMethod)
			if err != nil {
				return nil, nil, err
			}
			method = m
		}
		if cmd.Form.Discount != nil {
			c.discount = cmd.Form.Discount.DecimalOrZero()
		}
		if cmd.Form.Note != nil {
			c.note = *cmd.Form.Note
		}
		c.paymentMethod = method
		res.Rerender = []dto.View{dto.ViewCart}

	case dto.Checkout:
		touched := make([]string, 0, len(c.state.Cart))
		for _, l := range c.state.Cart {
			touched = append(touched, l.ProductID)
		}
		sale, err := c.cart.Checkout(c.state, dto.CheckoutRequest{
			Discount:      c.discount,
			PaymentMethod: c.paymentMethod,
			Note:          c.note,
		})
		if err != nil {
			return nil, nil, err
		}
		c.discount = decimal.Zero
		c.note = ""
		cp := copySale(sale)
		res.Sale = &cp
		res.Warning = c.persist(ctx)
		res.Rerender = []dto.View{dto.ViewProducts, dto.ViewCart, dto.ViewSales}
		log.Info().Str("sale_id", cp.ID).Str("total", cp.Total.StringFixed(2)).
			Int("items", len(cp.Items)).Msg("controller: sale recorded")
		return res, &checkoutEvents{sale: &cp, alerts: c.alertsFor(touched)}, nil

	default:
		return nil, nil, apierror.Validation(fmt.Sprintf("Ação desconhecida: %s", cmd.Action()))
	}
	return res, nil, nil
}

func (c *Controller) editContext() *dto.EditContext {
	return &dto.EditContext{EditingID: c.editingID, DraftStocks: maps.Clone(c.draft)}
}

func (c *Controller) resetEdit() {
	c.editingID = ""
	c.draft = map[string]int{}
}

// persist saves the state and turns a failure into a user-facing warning.
// The in-memory mutation is kept.
func (c *Controller) persist(ctx context.Context) string {
	if err := c.store.Save(ctx, c.state); err != nil {
		log.Error().Err(err).Msg("controller: persist failed")
		return persistWarning
	}
	return ""
}

func (c *Controller) alertsFor(productIDs []string) []dto.StockAlert {
	var out []dto.StockAlert
	for _, a := range c.catalog.StockAlerts(c.state) {
		if slices.Contains(productIDs, a.ProductID) {
			out = append(out, a)
		}
	}
	return out
}

func (c *Controller) notify(ctx context.Context, ev *checkoutEvents) {
	for _, a := range ev.alerts {
		log.Warn().Str("product_id", a.ProductID).Str("product", a.Name).
			Int("total_stock", a.TotalStock).Int("min_stock", a.MinStock).Msg("controller: stock at or below minimum")
	}
	if c.notifier == nil {
		return
	}
	if err := c.notifier.SaleRecorded(ctx, *ev.sale); err != nil {
		log.Warn().Err(err).Str("sale_id", ev.sale.ID).Msg("controller: receipt job not enqueued")
	}
	for _, a := range ev.alerts {
		if err := c.notifier.StockLow(ctx, a); err != nil {
			log.Warn().Err(err).Str("product_id", a.ProductID).Msg("controller: stock alert not enqueued")
		}
	}
}

// Close persists the state a last time and rejects further commands.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.store.Save(ctx, c.state)
}

// ── Queries ──────────────────────────────────────────────────────────────────
// Every query returns copies; nothing handed out aliases the state.

func (c *Controller) Snapshot() *model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) Products(f dto.ProductFilter) []dto.ProductView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return productViews(c.catalog.Filter(c.state.Products, f))
}

func (c *Controller) Categories(selected string) dto.CategoryListResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	cats := c.catalog.ListCategories(c.state.Products)
	return dto.CategoryListResponse{Categories: cats, Selected: c.catalog.SelectCategory(cats, selected)}
}

func (c *Controller) StockAlerts() []dto.StockAlert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.StockAlerts(c.state)
}

func (c *Controller) SaleableProducts() []dto.ProductView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return productViews(c.catalog.Saleable(c.state))
}

func (c *Controller) Margin(price, cost dto.FormValue) decimal.Decimal {
	return c.catalog.ComputeMargin(price.DecimalOrZero(), cost.DecimalOrZero())
}

func (c *Controller) Warehouses() []model.Warehouse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.Warehouses)
}

func (c *Controller) Cart() dto.CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.cart.View(c.state, c.discount)
	v.Form = dto.CheckoutForm{
		Discount:       c.discount,
		PaymentMethod:  c.paymentMethod,
		Note:           c.note,
		PaymentMethods: c.cart.PaymentMethods(),
	}
	return v
}

// Sales returns the history newest first.
func (c *Controller) Sales() []model.Sale {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Sale, len(c.state.Sales))
	for i := range c.state.Sales {
		out[i] = copySale(&c.state.Sales[i])
	}
	return out
}

func (c *Controller) Sale(id string) (*model.Sale, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Sales {
		if c.state.Sales[i].ID == id {
			s := copySale(&c.state.Sales[i])
			return &s, nil
		}
	}
	return nil, apierror.NotFound("Venda não encontrada.")
}

func (c *Controller) EditContext() dto.EditContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.editContext()
}

func productViews(products []model.Product) []dto.ProductView {
	out := make([]dto.ProductView, len(products))
	for i := range products {
		out[i] = dto.NewProductView(&products[i])
	}
	return out
}

func copySale(s *model.Sale) model.Sale {
	cp := *s
	cp.Items = slices.Clone(s.Items)
	if cp.Items == nil {
		cp.Items = []model.SaleItem{}
	}
	return cp
}
