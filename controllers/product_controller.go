package controllers

import (
	"net/http"

	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductController serves the catalog.
type ProductController struct {
	products services.ProductService
	carts    services.CartService
	logger   *zap.Logger
}

func NewProductController(products services.ProductService, carts services.CartService, logger *zap.Logger) *ProductController {
	return &ProductController{products: products, carts: carts, logger: logger}
}

// ListProducts handles GET /products?q=.
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	cart, err := currentCart(ctx, pc.carts)
	if err != nil {
		respondError(ctx, pc.logger, err)
		return
	}
	query := ctx.Query("q")
	listing, err := pc.products.ListProducts(ctx.Request.Context(), query, cart.ID)
	if err != nil {
		respondError(ctx, pc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"query":           query,
		"products":        listing.Products,
		"cart_quantities": listing.CartQuantities,
		"cart_item_count": listing.CartItemCount,
	})
}

// GetProduct handles GET /products/:id.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, pc.logger, err)
		return
	}
	cart, err := currentCart(ctx, pc.carts)
	if err != nil {
		respondError(ctx, pc.logger, err)
		return
	}
	detail, err := pc.products.GetProduct(ctx.Request.Context(), id, cart.ID)
	if err != nil {
		respondError(ctx, pc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
