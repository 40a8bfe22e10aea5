package service

import (
	"slices"

	"pdv/internal/apierror"
	"pdv/internal/dto"
	"pdv/internal/ledger"
	"pdv/internal/model"
)

// WarehouseService defines the warehouse registry contract.
type WarehouseService interface {
	Add(st *model.State, name dto.FormValue) (*model.Warehouse, error)
	Rename(st *model.State, warehouseID string, name dto.FormValue) (*model.Warehouse, error)
	// Remove refuses while any product holds stock there or any cart line
	// references it. Zero entries for the warehouse are dropped from products.
	Remove(st *model.State, warehouseID string) error
}

type warehouseService struct {
	newID func() string
}

// NewWarehouseService returns a WarehouseService that ids new warehouses with newID.
func NewWarehouseService(newID func() string) WarehouseService {
	return &warehouseService{newID: newID}
}

func (s *warehouseService) Add(st *model.State, name dto.FormValue) (*model.Warehouse, error) {
	n := name.Trimmed()
	if n == "" {
		return nil, apierror.Validation("Informe o nome do depósito.")
	}
	st.Warehouses = append(st.Warehouses, model.Warehouse{ID: s.newID(), Name: n})
	return &st.Warehouses[len(st.Warehouses)-1], nil
}

func (s *warehouseService) Rename(st *model.State, warehouseID string, name dto.FormValue) (*model.Warehouse, error) {
	w := st.Warehouse(warehouseID)
	if w == nil {
		return nil, apierror.NotFound("Depósito não encontrado.")
	}
	n := name.Trimmed()
	if n == "" {
		return nil, apierror.Validation("Informe o nome do depósito.")
	}
	w.Name = n
	return w, nil
}

func (s *warehouseService) Remove(st *model.State, warehouseID string) error {
	i := slices.IndexFunc(st.Warehouses, func(w model.Warehouse) bool { return w.ID == warehouseID })
	if i < 0 {
		return apierror.NotFound("Depósito não encontrado.")
	}
	for k := range st.Products {
		if st.Products[k].Stocks[warehouseID] > 0 {
			return apierror.ReferentialGuard("Depósito possui estoque. Zere o estoque antes de excluir.")
		}
	}
	if slices.ContainsFunc(st.Cart, func(l model.CartLine) bool { return l.WarehouseID == warehouseID }) {
		return apierror.ReferentialGuard("Remova os itens deste depósito do carrinho antes de excluir.")
	}

	st.Warehouses = slices.Delete(st.Warehouses, i, i+1)
	for k := range st.Products {
		p := &st.Products[k]
		if _, ok := p.Stocks[warehouseID]; ok {
			delete(p.Stocks, warehouseID)
			ledger.Recount(p)
		}
	}
	return nil
}
