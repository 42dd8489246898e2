package controllers

import (
	"errors"
	"net/http"

	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductListingPath is where an empty checkout is sent.
const ProductListingPath = "/products"

type CheckoutController struct {
	carts    services.CartService
	checkout services.CheckoutService
	logger   *zap.Logger
}

func NewCheckoutController(carts services.CartService, checkout services.CheckoutService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{carts: carts, checkout: checkout, logger: logger}
}

// Review handles GET /checkout/review.
func (cc *CheckoutController) Review(ctx *gin.Context) {
	cart, err := currentCart(ctx, cc.carts)
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	review, err := cc.checkout.Review(ctx.Request.Context(), cart.ID)
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": review.Lines, "total": review.Total})
}

// PlaceOrder handles POST /checkout.
func (cc *CheckoutController) PlaceOrder(ctx *gin.Context) {
	cart, err := currentCart(ctx, cc.carts)
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	order, err := cc.checkout.PlaceOrder(ctx.Request.Context(), cart.ID)
	if errors.Is(err, services.ErrEmptyCart) {
		ctx.Redirect(http.StatusSeeOther, ProductListingPath)
		return
	}
	if err != nil {
		respondError(ctx, cc.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}
