package service

import (
	"testing"

	"pdv/internal/apierror"
	"pdv/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWarehouse(t *testing.T) {
	st := newShopState()
	svc := NewWarehouseService(seqID("w"))

	_, err := svc.Add(st, "   ")
	assertKind(t, apierror.KindValidation, err)
	assert.Len(t, st.Warehouses, 1)

	w, err := svc.Add(st, "  Loja B ")
	require.NoError(t, err)
	assert.Equal(t, model.Warehouse{ID: "w-1", Name: "Loja B"}, *w)
	assert.Len(t, st.Warehouses, 2)
}

func TestRenameWarehouse(t *testing.T) {
	st := newShopState()
	st.Sales = append(st.Sales, model.Sale{ID: "s1", Items: []model.SaleItem{{WarehouseID: "w1", WarehouseName: "Loja A"}}})
	svc := NewWarehouseService(seqID("w"))

	_, err := svc.Rename(st, "w1", "")
	assertKind(t, apierror.KindValidation, err)
	_, err = svc.Rename(st, "nope", "X")
	assertKind(t, apierror.KindNotFound, err)

	w, err := svc.Rename(st, "w1", "Matriz")
	require.NoError(t, err)
	assert.Equal(t, "Matriz", w.Name)
	assert.Equal(t, "Loja A", st.Sales[0].Items[0].WarehouseName)
}

func TestRemoveWarehouse_RejectedWhileStocked(t *testing.T) {
	st := newShopState()
	st.Products[0].Stocks["w1"] = 7
	before := st.Clone()

	err := NewWarehouseService(seqID("w")).Remove(st, "w1")
	assertKind(t, apierror.KindReference, err)
	assert.Equal(t, before, st)
}

func TestRemoveWarehouse_RejectedWhileInCart(t *testing.T) {
	st := newShopState()
	st.Warehouses = append(st.Warehouses, model.Warehouse{ID: "w2", Name: "Loja B"})
	st.Cart = append(st.Cart, model.CartLine{ProductID: "gone", WarehouseID: "w2", Quantity: 1})

	err := NewWarehouseService(seqID("w")).Remove(st, "w2")
	assertKind(t, apierror.KindReference, err)
	assert.Len(t, st.Warehouses, 2)
}

func TestRemoveWarehouse_DropsZeroEntries(t *testing.T) {
	st := newShopState()
	st.Warehouses = append(st.Warehouses, model.Warehouse{ID: "w2", Name: "Loja B"})
	st.Products[0].Stocks["w2"] = 0

	require.NoError(t, NewWarehouseService(seqID("w")).Remove(st, "w2"))
	assert.Equal(t, []model.Warehouse{{ID: "w1", Name: "Loja A"}}, st.Warehouses)
	assert.Equal(t, map[string]int{"w1": 10}, st.Products[0].Stocks)
	assert.Equal(t, 10, st.Products[0].Stock)

	assertKind(t, apierror.KindNotFound, NewWarehouseService(seqID("w")).Remove(st, "w2"))
}
