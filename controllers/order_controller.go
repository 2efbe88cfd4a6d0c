package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// Checkout answers with the receipt. Clients that may retry send an
// Idempotency-Key header; a retry with the same key gets the same receipt.
func (h *CartController) Checkout(c *gin.Context) {
	order, err := h.carts.Checkout(c.Request.Context(), mustUser(c), c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *CartController) GetOrders(c *gin.Context) {
	orders, err := h.carts.ListOrders(c.Request.Context(), mustUser(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}
