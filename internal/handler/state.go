package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// State returns a copy of the whole aggregate in its persisted shape.
func State(ctrl Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ctrl.Snapshot())
	}
}
