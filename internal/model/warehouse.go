package model

// Warehouse is a named stock location. Products hold an independent quantity
// per warehouse in Product.Stocks.
type Warehouse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
