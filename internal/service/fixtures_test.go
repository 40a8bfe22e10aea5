package service

import (
	"fmt"
	"testing"
	"time"

	"pdv/internal/apierror"
	"pdv/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ── Fixtures ──────────────────────────────────────────────────────────────────

func seqID(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func assertKind(t *testing.T, want apierror.Kind, err error) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Equal(t, want, apierror.KindOf(err), err.Error())
	}
}

// newShopState: warehouse w1 "Loja A"; product A (price 100, cost 60, 10 in w1).
func newShopState() *model.State {
	st := model.NewState()
	st.Warehouses = append(st.Warehouses, model.Warehouse{ID: "w1", Name: "Loja A"})
	st.Products = append(st.Products, model.Product{
		ID: "A", Name: "Produto A", Category: "Bebidas", SKU: "SKU-A", Barcode: "789000000001",
		Unit: "un", Price: dec("100"), Cost: dec("60"), Margin: dec("40"),
		Stocks: map[string]int{"w1": 10}, Stock: 10, Status: model.StatusActive,
	})
	return st
}

func addProduct(st *model.State, p model.Product) *model.Product {
	if p.Unit == "" {
		p.Unit = "un"
	}
	if p.Status == "" {
		p.Status = model.StatusActive
	}
	if p.Stocks == nil {
		p.Stocks = map[string]int{}
	}
	for _, q := range p.Stocks {
		p.Stock += q
	}
	st.Products = append(st.Products, p)
	return &st.Products[len(st.Products)-1]
}
