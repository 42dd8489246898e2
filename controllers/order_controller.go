package controllers

import (
	"net/http"

	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	orders services.OrderService
	logger *zap.Logger
}

func NewOrderController(orders services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{orders: orders, logger: logger}
}

// ListOrders handles GET /orders.
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	orders, err := oc.orders.ListOrders(ctx.Request.Context())
	if err != nil {
		respondError(ctx, oc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder handles GET /orders/:id.
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	id, err := parseID(ctx, "id")
	if err != nil {
		respondError(ctx, oc.logger, err)
		return
	}
	order, err := oc.orders.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, oc.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}
