package ledger

import (
	"testing"

	"pdv/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestTotalStock(t *testing.T) {
	assert.Equal(t, 0, TotalStock(nil))
	assert.Equal(t, 12, TotalStock(map[string]int{"w1": 10, "w2": 2, "w3": -4}))
}

func TestAvailable(t *testing.T) {
	p := &model.Product{Stocks: map[string]int{"w1": 5, "w2": -1}}
	assert.Equal(t, 5, Available(p, "w1"))
	assert.Equal(t, 0, Available(p, "w2"))
	assert.Equal(t, 0, Available(p, "missing"))
	assert.Equal(t, 0, Available(nil, "w1"))
}

func TestDecrement_FloorsAtZero(t *testing.T) {
	p := &model.Product{Stocks: map[string]int{"w1": 5, "w2": 3}}

	removed := Decrement(p, "w1", 8)

	assert.Equal(t, 5, removed)
	assert.Equal(t, 0, p.Stocks["w1"])
	assert.Equal(t, 3, p.Stock)
}

func TestDecrement_NeverNegative(t *testing.T) {
	p := &model.Product{Stocks: map[string]int{"w1": 10}}
	for _, q := range []int{3, 4, 9, 1, 2} {
		Decrement(p, "w1", q)
		assert.GreaterOrEqual(t, p.Stocks["w1"], 0)
		assert.Equal(t, TotalStock(p.Stocks), p.Stock)
	}
}

func TestReplace_CopiesMap(t *testing.T) {
	draft := map[string]int{"w1": 4, "w2": -2}
	p := &model.Product{}

	Replace(p, draft)
	draft["w1"] = 99

	assert.Equal(t, map[string]int{"w1": 4, "w2": 0}, p.Stocks)
	assert.Equal(t, 4, p.Stock)
}
