package controllers

import (
	"net/http"

	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartController exposes the session cart.
type CartController struct {
	carts    services.CartService
	checkout services.CheckoutService
	logger   *zap.Logger
}

func NewCartController(carts services.CartService, checkout services.CheckoutService, logger *zap.Logger) *CartController {
	return &CartController{carts: carts, checkout: checkout, logger: logger}
}

// GetCart handles GET /cart.
func (cc *CartController) GetCart(ctx *gin.Context) {
	cart, err := currentCart(ctx, cc.carts)
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	count, err := cc.carts.ItemCount(ctx.Request.Context(), cart)
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	review, err := cc.checkout.Review(ctx.Request.Context(), cart.ID)
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"cart_id":         cart.ID,
		"cart_item_count": count,
		"items":           review.Lines,
		"total":           review.Total,
	})
}

// AddItem handles POST /cart/items/:product_id.
func (cc *CartController) AddItem(ctx *gin.Context) {
	productID, err := parseID(ctx, "product_id")
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	cart, err := currentCart(ctx, cc.carts)
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	res, err := cc.carts.AddItem(ctx.Request.Context(), cart.ID, productID)
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"cart_item":       res.Item,
		"created":         res.Created,
		"cart_item_count": res.CartItemCount,
	})
}

// UpdateQuantity handles POST /cart/items/:product_id/quantity with
// action=increment|decrement|set and an optional quantity.
func (cc *CartController) UpdateQuantity(ctx *gin.Context) {
	productID, err := parseID(ctx, "product_id")
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	cart, err := currentCart(ctx, cc.carts)
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	action := services.ParseAction(formValue(ctx, "action"))
	res, err := cc.carts.UpdateQuantity(ctx.Request.Context(), cart.ID, productID, action, formValue(ctx, "quantity"))
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"outcome":         res.Outcome,
		"product":         res.Product,
		"cart_item":       res.Item,
		"cart_item_count": res.CartItemCount,
	})
}
