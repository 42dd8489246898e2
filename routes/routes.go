package routes

import (
	"net/http"

	"storefront-service/controllers"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Orders   *controllers.OrderController
}

// RegisterRoutes mounts the storefront API. Session middleware must run first.
func RegisterRoutes(r gin.IRouter, c Controllers) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	products := r.Group("/products")
	products.GET("", c.Products.ListProducts)
	products.GET("/:id", c.Products.GetProduct)

	cart := r.Group("/cart")
	cart.GET("", c.Cart.GetCart)
	cart.POST("/items/:product_id", c.Cart.AddItem)
	cart.POST("/items/:product_id/quantity", c.Cart.UpdateQuantity)

	checkout := r.Group("/checkout")
	checkout.GET("/review", c.Checkout.Review)
	checkout.POST("", c.Checkout.PlaceOrder)

	orders := r.Group("/orders")
	orders.GET("", c.Orders.ListOrders)
	orders.GET("/:id", c.Orders.GetOrder)
}
