package handler

import (
	"net/http"

	"pdv/internal/dto"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ ctrl Controller }

func NewProductsHandler(ctrl Controller) *ProductsHandler {
	return &ProductsHandler{ctrl: ctrl}
}

func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	c.JSON(http.StatusOK, h.ctrl.Products(filter))
}

func (h *ProductsHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Categories(c.Query("selected")))
}

func (h *ProductsHandler) Alerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.StockAlerts())
}

func (h *ProductsHandler) Saleable(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.SaleableProducts())
}

// Margin previews the margin for the form's current price and cost.
func (h *ProductsHandler) Margin(c *gin.Context) {
	var q dto.MarginQuery
	if !bindQuery(c, &q) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"margin": h.ctrl.Margin(dto.FormValue(q.Price), dto.FormValue(q.Cost))})
}

func (h *ProductsHandler) EditContext(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.EditContext())
}

// Save creates a product, or updates the one opened with BeginEdit.
func (h *ProductsHandler) Save(c *gin.Context) {
	var req dto.ProductInput
	if !bindAndValidate(c, &req) {
		return
	}
	dispatch(c, h.ctrl, http.StatusOK, dto.SaveProduct{Input: req})
}

func (h *ProductsHandler) BeginEdit(c *gin.Context) {
	dispatch(c, h.ctrl, http.StatusOK, dto.BeginEdit{ProductID: c.Param("id")})
}

func (h *ProductsHandler) CancelEdit(c *gin.Context) {
	dispatch(c, h.ctrl, http.StatusOK, dto.CancelEdit{})
}

func (h *ProductsHandler) SetDraftStock(c *gin.Context) {
	var req dto.DraftStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	dispatch(c, h.ctrl, http.StatusOK, dto.SetDraftStock{WarehouseID: c.Param("warehouse_id"), Quantity: req.Quantity})
}

func (h *ProductsHandler) Remove(c *gin.Context) {
	dispatch(c, h.ctrl, http.StatusOK, dto.RemoveProduct{ProductID: c.Param("id")})
}
