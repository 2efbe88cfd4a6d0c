package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qkart/controllers"
	"qkart/middleware"
)

type Handlers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Users    *controllers.UserController
	Carts    *controllers.CartController

	// Authenticate guards every route below /v1 except auth and product reads.
	Authenticate gin.HandlerFunc
	// Ping reports whether the backing store is reachable.
	Ping func(ctx context.Context) error
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", health(h.Ping))

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
		}

		products := v1.Group("/products")
		{
			products.GET("", h.Products.GetProducts)
			products.GET("/search", h.Products.SearchProducts)
			products.GET("/:productId", h.Products.GetProduct)
		}

		protected := v1.Group("/")
		protected.Use(h.Authenticate)
		{
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.POST("/products", h.Products.CreateProduct)
				admin.PUT("/products/:productId", h.Products.UpdateProduct)
				admin.DELETE("/products/:productId", h.Products.DeleteProduct)
				admin.GET("/orders", h.Carts.GetOrdersAdmin)
			}

			users := protected.Group("/users")
			{
				users.GET("/me", h.Users.GetProfile)
				users.PUT("/me/address", h.Users.SetAddress)
			}

			cart := protected.Group("/cart")
			{
				cart.GET("", h.Carts.GetCart)
				cart.POST("", h.Carts.AddToCart)
				cart.PUT("", h.Carts.UpdateCart)
				cart.PUT("/checkout", h.Carts.Checkout)
				cart.DELETE("/:productId", h.Carts.RemoveFromCart)
			}

			protected.GET("/orders", h.Carts.GetOrders)
		}
	}
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
