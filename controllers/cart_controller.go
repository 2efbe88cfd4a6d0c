package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"qkart/models"
)

type CartService interface {
	GetCartByUser(ctx context.Context, user *models.User) (*models.Cart, error)
	AddProductToCart(ctx context.Context, user *models.User, productID string, quantity int) (*models.Cart, error)
	UpdateProductInCart(ctx context.Context, user *models.User, productID string, quantity int) (*models.Cart, error)
	DeleteProductFromCart(ctx context.Context, user *models.User, productID string) error
	Checkout(ctx context.Context, user *models.User, checkoutID string) (*models.Order, error)
	ListOrders(ctx context.Context, user *models.User) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
}

type CartController struct {
	carts CartService
	log   zerolog.Logger
}

func NewCartController(carts CartService, log zerolog.Logger) *CartController {
	return &CartController{carts: carts, log: log}
}

type cartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

func (h *CartController) GetCart(c *gin.Context) {
	cart, err := h.carts.GetCartByUser(c.Request.Context(), mustUser(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartController) AddToCart(c *gin.Context) {
	var body cartItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badInput(c, "productId and quantity are required")
		return
	}

	cart, err := h.carts.AddProductToCart(c.Request.Context(), mustUser(c), body.ProductID, *body.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

// UpdateCart sets a product's quantity. A quantity of zero removes the
// product and answers 204.
func (h *CartController) UpdateCart(c *gin.Context) {
	var body cartItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badInput(c, "productId and quantity are required")
		return
	}

	user := mustUser(c)
	if *body.Quantity == 0 {
		if err := h.carts.DeleteProductFromCart(c.Request.Context(), user, body.ProductID); err != nil {
			respondError(c, h.log, err)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	cart, err := h.carts.UpdateProductInCart(c.Request.Context(), user, body.ProductID, *body.Quantity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartController) RemoveFromCart(c *gin.Context) {
	if err := h.carts.DeleteProductFromCart(c.Request.Context(), mustUser(c), c.Param("productId")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
