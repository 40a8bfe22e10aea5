package handler

import (
	"net/http"

	"pdv/internal/dto"

	"github.com/gin-gonic/gin"
)

type WarehousesHandler struct{ ctrl Controller }

func NewWarehousesHandler(ctrl Controller) *WarehousesHandler {
	return &WarehousesHandler{ctrl: ctrl}
}

func (h *WarehousesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Warehouses())
}

func (h *WarehousesHandler) Create(c *gin.Context) {
	var req dto.WarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	dispatch(c, h.ctrl, http.StatusCreated, dto.AddWarehouse{Name: req.Name})
}

func (h *WarehousesHandler) Rename(c *gin.Context) {
	var req dto.WarehouseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	dispatch(c, h.ctrl, http.StatusOK, dto.RenameWarehouse{WarehouseID: c.Param("id"), Name: req.Name})
}

func (h *WarehousesHandler) Remove(c *gin.Context) {
	dispatch(c, h.ctrl, http.StatusOK, dto.RemoveWarehouse{WarehouseID: c.Param("id")})
}
