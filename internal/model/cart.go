package model

import "math"

// MaxQuantity bounds every stock entry and cart quantity, so sums of them
// always fit in an int.
const MaxQuantity = math.MaxInt32

// CartLine is one pending product+warehouse quantity. The pair
// (ProductID, WarehouseID) is unique within a cart.
type CartLine struct {
	ProductID   string `json:"productId"`
	WarehouseID string `json:"warehouseId"`
	Quantity    int    `json:"quantity"`
}
