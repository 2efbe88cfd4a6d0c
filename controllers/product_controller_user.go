package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"qkart/models"
)

type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Search(ctx context.Context, value string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductController struct {
	products ProductService
	log      zerolog.Logger
}

func NewProductController(products ProductService, log zerolog.Logger) *ProductController {
	return &ProductController{products: products, log: log}
}

func (h *ProductController) GetProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductController) GetProduct(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// SearchProducts matches ?value= against name and category.
func (h *ProductController) SearchProducts(c *gin.Context) {
	products, err := h.products.Search(c.Request.Context(), c.Query("value"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
