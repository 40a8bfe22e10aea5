package dto

type WarehouseRequest struct {
	Name FormValue `json:"name"`
}
