package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"pdv/internal/infra"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	ctrl      Controller
	storeName string
}

func NewSalesHandler(ctrl Controller, storeName string) *SalesHandler {
	return &SalesHandler{ctrl: ctrl, storeName: storeName}
}

// List returns the sale history, newest first.
func (h *SalesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Sales())
}

// Receipt renders the sale's PDF receipt on demand.
func (h *SalesHandler) Receipt(c *gin.Context) {
	sale, err := h.ctrl.Sale(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := infra.RenderReceipt(&buf, sale, h.storeName); err != nil {
		fail(c, fmt.Errorf("render receipt %s: %w", sale.ID, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="receipt_%s.pdf"`, sale.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
