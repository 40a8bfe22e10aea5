package handler

import (
	"net/http"

	"pdv/internal/dto"

	"github.com/gin-gonic/gin"
)

type CartHandler struct{ ctrl Controller }

func NewCartHandler(ctrl Controller) *CartHandler {
	return &CartHandler{ctrl: ctrl}
}

func (h *CartHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Cart())
}

func (h *CartHandler) AddLine(c *gin.Context) {
	var req dto.AddCartLineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	dispatch(c, h.ctrl, http.StatusOK, dto.AddCartLine{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
	})
}

func (h *CartHandler) RemoveLine(c *gin.Context) {
	dispatch(c, h.ctrl, http.StatusOK, dto.RemoveCartLine{
		ProductID:   c.Param("product_id"),
		WarehouseID: c.Param("warehouse_id"),
	})
}

func (h *CartHandler) Clear(c *gin.Context) {
	dispatch(c, h.ctrl, http.StatusOK, dto.ClearCart{})
}

func (h *CartHandler) UpdateCheckoutForm(c *gin.Context) {
	var req dto.CheckoutFormRequest
	if !bindAndValidate(c, &req) {
		return
	}
	dispatch(c, h.ctrl, http.StatusOK, dto.UpdateCheckoutForm{Form: req})
}

func (h *CartHandler) Checkout(c *gin.Context) {
	dispatch(c, h.ctrl, http.StatusCreated, dto.Checkout{})
}
