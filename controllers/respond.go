package controllers

import (
	"errors"
	"net/http"

	"storefront-service/apperrors"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondError renders err with its status and machine-readable code.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var oos *services.OutOfStockError
	if errors.As(err, &oos) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           apperrors.CodeOutOfStock,
			"message":         apperrors.ErrOutOfStock.Message,
			"product":         oos.Product,
			"cart_item_count": oos.CartItemCount,
		})
		return
	}

	appErr := apperrors.From(err)
	body := gin.H{"error": appErr.Code, "message": appErr.Message}

	var conflict *services.StockConflictError
	if errors.As(err, &conflict) {
		body["product"] = conflict.Product
		body["requested"] = conflict.Requested
	}
	if appErr.Status >= http.StatusInternalServerError {
		logger.ForRequest(log, c).Error("Request failed", zap.Error(err))
	}
	c.JSON(appErr.Status, body)
}

func parseID(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput("invalid " + param)
	}
	return id, nil
}

func currentCart(c *gin.Context, carts services.CartService) (*models.Cart, error) {
	return carts.ResolveCart(c.Request.Context(), middleware.GetSessionID(c))
}

// formValue prefers the query string and falls back to a form body.
func formValue(c *gin.Context, key string) string {
	if v, ok := c.GetQuery(key); ok {
		return v
	}
	return c.PostForm(key)
}
