package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qkart/models"
)

func (h *ProductController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		badInput(c, "name and category are required, cost must be >= 0 and rating between 0 and 5")
		return
	}

	if err := h.products.Create(c.Request.Context(), &product); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductController) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badInput(c, "Invalid request body")
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("productId"), patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductController) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("productId")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
