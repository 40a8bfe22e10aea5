package store

import (
	"strings"
	"time"

	"pdv/internal/apierror"
	"pdv/internal/ledger"
	"pdv/internal/model"
	"pdv/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Normalize coerces any partially-shaped persisted document into the
// canonical State. Non-array collections become empty, missing numbers
// become zero and unknown fields are dropped. Only unparseable JSON is an
// error; a valid document of the wrong shape yields the empty state.
func Normalize(raw []byte) (*model.State, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &apierror.Error{Kind: apierror.KindCorruption, Detail: "stored state is not valid JSON"}
	}
	doc := gjson.ParseBytes(raw)
	st := model.NewState()
	if !doc.IsObject() {
		return st, nil
	}

	for _, w := range arrayField(doc.Get("warehouses")) {
		if !w.IsObject() {
			continue
		}
		st.Warehouses = append(st.Warehouses, model.Warehouse{
			ID:   stringField(w.Get("id")),
			Name: stringField(w.Get("name")),
		})
	}
	for _, p := range arrayField(doc.Get("products")) {
		if p.IsObject() {
			st.Products = append(st.Products, normalizeProduct(p))
		}
	}
	for _, l := range arrayField(doc.Get("cart")) {
		if !l.IsObject() {
			continue
		}
		line := model.CartLine{
			ProductID:   stringField(l.Get("productId")),
			WarehouseID: stringField(l.Get("warehouseId")),
			Quantity:    intField(l.Get("quantity")),
		}
		if line.ProductID == "" || line.Quantity <= 0 {
			continue
		}
		st.Cart = append(st.Cart, line)
	}
	for _, s := range arrayField(doc.Get("sales")) {
		if s.IsObject() {
			st.Sales = append(st.Sales, normalizeSale(s))
		}
	}
	return st, nil
}

func normalizeProduct(r gjson.Result) model.Product {
	p := model.Product{
		ID:       stringField(r.Get("id")),
		Name:     stringField(r.Get("name")),
		Category: stringField(r.Get("category")),
		SKU:      stringField(r.Get("sku")),
		Barcode:  stringField(r.Get("barcode")),
		Unit:     stringField(r.Get("unit")),
		Price:    nonNegative(decimalField(r.Get("price"))),
		Cost:     nonNegative(decimalField(r.Get("cost"))),
		MinStock: intField(r.Get("minStock")),
		Supplier: stringField(r.Get("supplier")),
		Notes:    stringField(r.Get("notes")),
		Status:   model.StatusActive,
		Stocks:   map[string]int{},
	}
	if p.Unit == "" {
		p.Unit = "un"
	}
	if stringField(r.Get("status")) == string(model.StatusInactive) {
		p.Status = model.StatusInactive
	}
	p.Margin = pricing.ComputeMargin(p.Price, p.Cost)

	if stocks := r.Get("stocks"); stocks.IsObject() {
		stocks.ForEach(func(key, value gjson.Result) bool {
			if w := key.String(); w != "" {
				p.Stocks[w] = intField(value)
			}
			return true
		})
	}
	if len(p.Stocks) > 0 {
		ledger.Recount(&p)
	} else {
		// Legacy single-number stock; Migrate moves it into a warehouse.
		p.Stock = intField(r.Get("stock"))
	}
	return p
}

func normalizeSale(r gjson.Result) model.Sale {
	s := model.Sale{
		ID:            stringField(r.Get("id")),
		Date:          timeField(r.Get("date")),
		Subtotal:      decimalField(r.Get("subtotal")),
		Discount:      decimalField(r.Get("discount")),
		Total:         decimalField(r.Get("total")),
		PaymentMethod: stringField(r.Get("paymentMethod")),
		Note:          stringField(r.Get("note")),
		Items:         []model.SaleItem{},
	}
	for _, it := range arrayField(r.Get("items")) {
		if !it.IsObject() {
			continue
		}
		s.Items = append(s.Items, model.SaleItem{
			ProductID:     stringField(it.Get("productId")),
			Name:          stringField(it.Get("name")),
			WarehouseID:   stringField(it.Get("warehouseId")),
			WarehouseName: stringField(it.Get("warehouseName")),
			Quantity:      intField(it.Get("quantity")),
			Price:         decimalField(it.Get("price")),
		})
	}
	return s
}

func arrayField(r gjson.Result) []gjson.Result {
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}

func stringField(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	default:
		return ""
	}
}

// decimalField reads numbers and numeric strings; anything else is zero.
func decimalField(r gjson.Result) decimal.Decimal {
	var s string
	switch r.Type {
	case gjson.Number:
		s = r.Raw
	case gjson.String:
		s = strings.TrimSpace(r.Str)
	default:
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var maxQuantity = decimal.NewFromInt(model.MaxQuantity)

// intField truncates toward zero and clamps to [0, model.MaxQuantity].
func intField(r gjson.Result) int {
	d := decimalField(r)
	if !d.IsPositive() {
		return 0
	}
	if d.GreaterThan(maxQuantity) {
		return model.MaxQuantity
	}
	return int(d.IntPart())
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// timeField accepts RFC 3339 strings and epoch milliseconds.
func timeField(r gjson.Result) time.Time {
	switch r.Type {
	case gjson.Number:
		return time.UnixMilli(r.Int()).UTC()
	case gjson.String:
		if t, err := time.Parse(time.RFC3339Nano, r.Str); err == nil {
			return t
		}
	}
	return time.Time{}
}
