// Package ledger is the stock ledger: per-product, per-warehouse quantities
// and the derived total. Quantities never go below zero.
package ledger

import "pdv/internal/model"

// TotalStock sums all quantities, treating negatives as zero.
func TotalStock(stocks map[string]int) int {
	total := 0
	for _, q := range stocks {
		if q > 0 {
			total += q
		}
	}
	return total
}

// Available is the quantity of p held in warehouseID.
func Available(p *model.Product, warehouseID string) int {
	if p == nil || p.Stocks == nil {
		return 0
	}
	if q := p.Stocks[warehouseID]; q > 0 {
		return q
	}
	return 0
}

// Decrement removes qty from p's stock in warehouseID, floored at zero, and
// refreshes the cached total. Returns the quantity actually removed.
func Decrement(p *model.Product, warehouseID string, qty int) int {
	if p.Stocks == nil {
		p.Stocks = map[string]int{}
	}
	before := Available(p, warehouseID)
	after := max(before-qty, 0)
	p.Stocks[warehouseID] = after
	Recount(p)
	return before - after
}

// Recount refreshes the cached Stock total from Stocks.
func Recount(p *model.Product) {
	p.Stock = TotalStock(p.Stocks)
}

// Replace swaps p's stock map for a copy of stocks, clamping entries to
// [0, model.MaxQuantity], and refreshes the cached total.
func Replace(p *model.Product, stocks map[string]int) {
	next := make(map[string]int, len(stocks))
	for w, q := range stocks {
		next[w] = min(max(q, 0), model.MaxQuantity)
	}
	p.Stocks = next
	Recount(p)
}
