package model

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	// The persisted blob stores money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// State is the whole persisted aggregate. Slices are never nil.
type State struct {
	Warehouses []Warehouse `json:"warehouses"`
	Products   []Product   `json:"products"`
	Cart       []CartLine  `json:"cart"`
	Sales      []Sale      `json:"sales"`
}

func NewState() *State {
	return &State{
		Warehouses: []Warehouse{},
		Products:   []Product{},
		Cart:       []CartLine{},
		Sales:      []Sale{},
	}
}

// Product returns a pointer into s.Products, or nil.
func (s *State) Product(id string) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// Warehouse returns a pointer into s.Warehouses, or nil.
func (s *State) Warehouse(id string) *Warehouse {
	for i := range s.Warehouses {
		if s.Warehouses[i].ID == id {
			return &s.Warehouses[i]
		}
	}
	return nil
}

// CartLineIndex returns the index of the line for the pair, or -1.
func (s *State) CartLineIndex(productID, warehouseID string) int {
	return slices.IndexFunc(s.Cart, func(l CartLine) bool {
		return l.ProductID == productID && l.WarehouseID == warehouseID
	})
}

// Clone deep-copies the state so callers outside the store never alias it.
func (s *State) Clone() *State {
	out := &State{
		Warehouses: slices.Clone(s.Warehouses),
		Products:   make([]Product, len(s.Products)),
		Cart:       slices.Clone(s.Cart),
		Sales:      make([]Sale, len(s.Sales)),
	}
	for i, p := range s.Products {
		p.Stocks = maps.Clone(p.Stocks)
		out.Products[i] = p
	}
	for i, sale := range s.Sales {
		sale.Items = slices.Clone(sale.Items)
		out.Sales[i] = sale
	}
	if out.Warehouses == nil {
		out.Warehouses = []Warehouse{}
	}
	if out.Cart == nil {
		out.Cart = []CartLine{}
	}
	return out
}
