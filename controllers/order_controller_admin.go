package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *CartController) GetOrdersAdmin(c *gin.Context) {
	orders, err := h.carts.ListAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}
