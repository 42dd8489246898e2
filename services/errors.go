package services

import (
	"errors"
	"fmt"

	"storefront-service/apperrors"
	"storefront-service/models"
	"storefront-service/repository"
)

// ErrEmptyCart reports a checkout attempt on a cart with no lines.
// Callers redirect to the product listing instead of failing.
var ErrEmptyCart = errors.New("cart is empty")

// OutOfStockError carries what the caller needs to render the rejection.
type OutOfStockError struct {
	Product       models.Product
	CartItemCount int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %s is out of stock", e.Product.ID)
}

func (e *OutOfStockError) Unwrap() error {
	return apperrors.ErrOutOfStock
}

// StockConflictError is returned by strict checkouts when a line exceeds stock.
type StockConflictError struct {
	Product   models.Product
	Requested int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("product %s has %d in stock, %d requested", e.Product.ID, e.Product.StockQty, e.Requested)
}

func (e *StockConflictError) Unwrap() error {
	return apperrors.ErrStockConflict
}

// storageErr maps repository failures onto the application taxonomy.
func storageErr(entity string, err error) error {
	var appErr *apperrors.Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(entity, err)
	case errors.As(err, &appErr), errors.Is(err, ErrEmptyCart):
		return err
	default:
		return apperrors.StorageUnavailable(err)
	}
}
