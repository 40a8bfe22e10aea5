package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"pdv/internal/model"
	"pdv/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type failingRepo struct {
	getErr error
	putErr error
}

func (r *failingRepo) Get(context.Context, string) ([]byte, error) { return nil, r.getErr }
func (r *failingRepo) Put(context.Context, string, []byte) error { return r.putErr }

var _ repository.StateBlobRepository = (*failingRepo)(nil)

func newTestStore(repo repository.StateBlobRepository) *Store {
	s := New(repo, "pdv_data_v1", "Principal")
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func seedBlob(t *testing.T, raw string) repository.StateBlobRepository {
	t.Helper()
	repo := repository.NewMemoryBlobRepository()
	require.NoError(t, repo.Put(context.Background(), "pdv_data_v1", []byte(raw)))
	return repo
}

func assertEmpty(t *testing.T, st *model.State) {
	t.Helper()
	require.NotNil(t, st)
	assert.NotNil(t, st.Warehouses)
	assert.NotNil(t, st.Products)
	assert.NotNil(t, st.Cart)
	assert.NotNil(t, st.Sales)
	assert.Empty(t, st.Warehouses)
	assert.Empty(t, st.Products)
	assert.Empty(t, st.Cart)
	assert.Empty(t, st.Sales)
}

// ── Load ──────────────────────────────────────────────────────────────────────

func TestLoad_MissingKey(t *testing.T) {
	s := newTestStore(repository.NewMemoryBlobRepository())
	assertEmpty(t, s.Load(context.Background()))
}

func TestLoad_MalformedJSON(t *testing.T) {
	s := newTestStore(seedBlob(t, `{"products": [`))
	assertEmpty(t, s.Load(context.Background()))
}

func TestLoad_ReadError(t *testing.T) {
	s := newTestStore(&failingRepo{getErr: errors.New("disk on fire")})
	assertEmpty(t, s.Load(context.Background()))
}

func TestLoad_WrongShape(t *testing.T) {
	for _, raw := range []string{`null`, `42`, `"text"`, `[]`, `{"products":{},"cart":"x","sales":7,"warehouses":null}`} {
		s := newTestStore(seedBlob(t, raw))
		assertEmpty(t, s.Load(context.Background()))
	}
}

// ── Normalize ─────────────────────────────────────────────────────────────────

func TestNormalize_CoercesProductFields(t *testing.T) {
	st, err := Normalize([]byte(`{
		"products": [{
			"id": "p1", "name": "Café", "price": "100", "cost": "abc",
			"margin": 999, "minStock": -3, "status": "weird",
			"stocks": {"w1": 4, "w2": "6", "w3": -2, "w4": "x"},
			"extra": {"dropped": true}
		}]
	}`))
	require.NoError(t, err)
	require.Len(t, st.Products, 1)
	p := st.Products[0]

	assert.Equal(t, "Café", p.Name)
	assert.Equal(t, "un", p.Unit)
	assert.Equal(t, "", p.SKU)
	assert.True(t, decimal.NewFromInt(100).Equal(p.Price))
	assert.True(t, p.Cost.IsZero())
	assert.True(t, decimal.NewFromInt(100).Equal(p.Margin), "margin is recomputed, not trusted")
	assert.Equal(t, 0, p.MinStock)
	assert.Equal(t, model.StatusActive, p.Status)
	assert.Equal(t, map[string]int{"w1": 4, "w2": 6, "w3": 0, "w4": 0}, p.Stocks)
	assert.Equal(t, 10, p.Stock)
}

func TestNormalize_ClampsHugeQuantities(t *testing.T) {
	st, err := Normalize([]byte(`{
		"products":[{"id":"p1","minStock":"1e30","stocks":{"w1":1e30,"w2":99999999999999999999}}],
		"cart":[{"productId":"p1","warehouseId":"w1","quantity":"18446744073709551619"}]
	}`))
	require.NoError(t, err)
	p := st.Products[0]
	assert.Equal(t, map[string]int{"w1": model.MaxQuantity, "w2": model.MaxQuantity}, p.Stocks)
	assert.Equal(t, 2*model.MaxQuantity, p.Stock)
	assert.Equal(t, model.MaxQuantity, p.MinStock)
	assert.Equal(t, model.MaxQuantity, st.Cart[0].Quantity)
}

func TestNormalize_KeepsInactiveStatus(t *testing.T) {
	st, err := Normalize([]byte(`{"products":[{"id":"p1","status":"inactive"}]}`))
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, st.Products[0].Status)
}

func TestNormalize_DropsInvalidCartLines(t *testing.T) {
	st, err := Normalize([]byte(`{"cart":[
		{"productId":"p1","warehouseId":"w1","quantity":2},
		{"productId":"","quantity":1},
		{"productId":"p2","quantity":0},
		"junk"
	]}`))
	require.NoError(t, err)
	assert.Equal(t, []model.CartLine{{ProductID: "p1", WarehouseID: "w1", Quantity: 2}}, st.Cart)
}

func TestNormalize_SaleDates(t *testing.T) {
	st, err := Normalize([]byte(`{"sales":[
		{"id":"s1","date":1700000000000,"total":10,"items":[{"productId":"p1","name":"A","quantity":1,"price":10}]},
		{"id":"s2","date":"2026-01-02T03:04:05Z"},
		{"id":"s3","date":"yesterday"}
	]}`))
	require.NoError(t, err)
	require.Len(t, st.Sales, 3)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), st.Sales[0].Date)
	assert.Len(t, st.Sales[0].Items, 1)
	assert.Equal(t, 2026, st.Sales[1].Date.Year())
	assert.True(t, st.Sales[2].Date.IsZero())
	assert.NotNil(t, st.Sales[2].Items)
}

// ── Migrate ───────────────────────────────────────────────────────────────────

func TestMigrate_LegacySingleWarehouse(t *testing.T) {
	st, err := Normalize([]byte(`{
		"products": [
			{"id":"p1","name":"A","price":10,"stock":12},
			{"id":"p2","name":"B","price":5,"stock":0}
		],
		"cart": [{"productId":"p1","quantity":2}]
	}`))
	require.NoError(t, err)
	s := newTestStore(nil)

	assert.True(t, s.Migrate(st))

	require.Len(t, st.Warehouses, 1)
	assert.Equal(t, model.Warehouse{ID: "id-1", Name: "Principal"}, st.Warehouses[0])
	assert.Equal(t, map[string]int{"id-1": 12}, st.Products[0].Stocks)
	assert.Equal(t, 12, st.Products[0].Stock)
	assert.Empty(t, st.Products[1].Stocks)
	assert.Equal(t, []model.CartLine{{ProductID: "p1", WarehouseID: "id-1", Quantity: 2}}, st.Cart)
}

func TestMigrate_Idempotent(t *testing.T) {
	st, err := Normalize([]byte(`{"products":[{"id":"p1","stock":3}],"cart":[{"productId":"p1","quantity":1}]}`))
	require.NoError(t, err)
	s := newTestStore(nil)
	require.True(t, s.Migrate(st))
	before := st.Clone()

	assert.False(t, s.Migrate(st))
	assert.Equal(t, before, st)
}

func TestMigrate_DoesNotOverrideExistingStocks(t *testing.T) {
	st, err := Normalize([]byte(`{
		"warehouses":[{"id":"w1","name":"Loja A"}],
		"products":[{"id":"p1","stock":50,"stocks":{"w1":7}}]
	}`))
	require.NoError(t, err)

	assert.False(t, newTestStore(nil).Migrate(st))
	assert.Equal(t, map[string]int{"w1": 7}, st.Products[0].Stocks)
	assert.Equal(t, 7, st.Products[0].Stock)
}

func TestMigrate_MergesDuplicateCartPairs(t *testing.T) {
	st, err := Normalize([]byte(`{
		"warehouses":[{"id":"w1","name":"Loja A"}],
		"cart":[{"productId":"p1","warehouseId":"w1","quantity":2},{"productId":"p1","quantity":3}]
	}`))
	require.NoError(t, err)

	assert.True(t, newTestStore(nil).Migrate(st))
	assert.Equal(t, []model.CartLine{{ProductID: "p1", WarehouseID: "w1", Quantity: 5}}, st.Cart)
}

// ── Open / Save ───────────────────────────────────────────────────────────────

func TestOpen_PersistsMigration(t *testing.T) {
	repo := seedBlob(t, `{"products":[{"id":"p1","name":"A","price":10,"stock":4}]}`)
	s := newTestStore(repo)

	st, err := s.Open(context.Background())
	require.NoError(t, err)
	assert.Len(t, st.Warehouses, 1)

	raw, err := repo.Get(context.Background(), "pdv_data_v1")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc["warehouses"], 1)
}

func TestOpen_SaveFailureIsAWarning(t *testing.T) {
	s := newTestStore(&failingRepo{getErr: repository.ErrBlobNotFound, putErr: errors.New("quota exceeded")})

	st, err := s.Open(context.Background())
	assert.Error(t, err)
	require.NotNil(t, st)
	assert.Len(t, st.Warehouses, 1)
}

func TestSave_RoundTrip(t *testing.T) {
	repo := repository.NewMemoryBlobRepository()
	s := newTestStore(repo)
	st := model.NewState()
	st.Warehouses = append(st.Warehouses, model.Warehouse{ID: "w1", Name: "Loja A"})
	st.Products = append(st.Products, model.Product{
		ID: "p1", Name: "A", Unit: "un", Status: model.StatusActive,
		Price: decimal.RequireFromString("19.90"), Cost: decimal.RequireFromString("10"),
		Stocks: map[string]int{"w1": 3}, Stock: 3,
	})

	require.NoError(t, s.Save(context.Background(), st))
	raw, err := repo.Get(context.Background(), "pdv_data_v1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":19.9`)

	loaded := s.Load(context.Background())
	assert.True(t, st.Products[0].Price.Equal(loaded.Products[0].Price))
	assert.Equal(t, st.Products[0].Stocks, loaded.Products[0].Stocks)
}
