package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"storefront-service/apperrors"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Action string

const (
	ActionIncrement Action = "increment"
	ActionDecrement Action = "decrement"
	ActionSet       Action = "set"
)

// ParseAction maps anything other than increment or decrement to set.
func ParseAction(raw string) Action {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionIncrement:
		return ActionIncrement
	case ActionDecrement:
		return ActionDecrement
	default:
		return ActionSet
	}
}

type Outcome string

const (
	OutcomeAbsent  Outcome = "absent"
	OutcomeRemoved Outcome = "removed"
	OutcomeUpdated Outcome = "updated"
)

type AddItemResult struct {
	Item          models.CartItem
	Created       bool
	CartItemCount int
}

// UpdateResult.Item is nil unless Outcome is OutcomeUpdated.
type UpdateResult struct {
	Outcome       Outcome
	Product       models.Product
	Item          *models.CartItem
	CartItemCount int
}

// CartService owns session cart resolution and line item mutations.
type CartService interface {
	ResolveCart(ctx context.Context, sessionID string) (*models.Cart, error)
	ItemCount(ctx context.Context, cart *models.Cart) (int, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID) (*AddItemResult, error)
	UpdateQuantity(ctx context.Context, cartID, productID uuid.UUID, action Action, rawQuantity string) (*UpdateResult, error)
}

type cartServiceImpl struct {
	store    repository.Store
	sessions session.CartLookup
	sfg      singleflight.Group
	logger   *zap.Logger
}

func NewCartService(store repository.Store, sessions session.CartLookup, logger *zap.Logger) CartService {
	return &cartServiceImpl{store: store, sessions: sessions, logger: logger}
}

// ResolveCart returns the cart bound to the session, creating and binding a
// new one when there is no binding or the bound cart no longer exists.
// Concurrent calls for one session share a single resolution.
func (s *cartServiceImpl) ResolveCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("missing session")
	}
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		return s.resolve(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	cart := *v.(*models.Cart)
	return &cart, nil
}

func (s *cartServiceImpl) resolve(ctx context.Context, sessionID string) (*models.Cart, error) {
	cartID, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	if ok {
		cart, err := s.store.Carts().FindByID(ctx, cartID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.StorageUnavailable(err)
		}
		s.logger.Info("Session references a missing cart, creating a new one",
			zap.String("stale_cart_id", cartID.String()))
	}

	cart := &models.Cart{}
	if err := s.store.Carts().Create(ctx, cart); err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	if err := s.sessions.Set(ctx, sessionID, cart.ID); err != nil {
		return nil, apperrors.StorageUnavailable(err)
	}
	s.logger.Debug("Cart created", zap.String("cart_id", cart.ID.String()))
	return cart, nil
}

func (s *cartServiceImpl) ItemCount(ctx context.Context, cart *models.Cart) (int, error) {
	if cart == nil {
		return 0, nil
	}
	n, err := s.store.Carts().SumQuantity(ctx, cart.ID)
	if err != nil {
		return 0, apperrors.StorageUnavailable(err)
	}
	return n, nil
}

// AddItem adds one unit of the product, capped silently at available stock.
func (s *cartServiceImpl) AddItem(ctx context.Context, cartID, productID uuid.UUID) (*AddItemResult, error) {
	var result AddItemResult
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Carts().Lock(ctx, cartID); err != nil {
			return storageErr("cart", err)
		}
		product, err := tx.Products().FindByID(ctx, productID)
		if err != nil {
			return storageErr("product", err)
		}

		if product.StockQty <= 0 {
			count, err := tx.Carts().SumQuantity(ctx, cartID)
			if err != nil {
				return storageErr("cart", err)
			}
			return &OutOfStockError{Product: *product, CartItemCount: count}
		}

		item, err := tx.Carts().FindItem(ctx, cartID, productID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			item = &models.CartItem{CartID: cartID, ProductID: productID, Quantity: 1}
			if err := tx.Carts().CreateItem(ctx, item); err != nil {
				return storageErr("cart item", err)
			}
			result.Created = true
		case err != nil:
			return storageErr("cart item", err)
		case item.Quantity < product.StockQty:
			item.Quantity++
			if err := tx.Carts().UpdateItemQuantity(ctx, item.ID, item.Quantity); err != nil {
				return storageErr("cart item", err)
			}
		}

		item.Product = *product
		result.Item = *item
		result.CartItemCount, err = tx.Carts().SumQuantity(ctx, cartID)
		return storageErr("cart", err)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateQuantity applies increment, decrement or set to an existing line.
// Targets at or below zero remove the line and targets above stock are clamped.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, cartID, productID uuid.UUID, action Action, rawQuantity string) (*UpdateResult, error) {
	var result UpdateResult
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Carts().Lock(ctx, cartID); err != nil {
			return storageErr("cart", err)
		}
		product, err := tx.Products().FindByID(ctx, productID)
		if err != nil {
			return storageErr("product", err)
		}
		result.Product = *product

		item, err := tx.Carts().FindItem(ctx, cartID, productID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			result.Outcome = OutcomeAbsent
		case err != nil:
			return storageErr("cart item", err)
		default:
			target := targetQuantity(item.Quantity, action, rawQuantity)
			if target > product.StockQty {
				target = product.StockQty
			}
			if target <= 0 {
				if err := tx.Carts().DeleteItem(ctx, item.ID); err != nil {
					return storageErr("cart item", err)
				}
				result.Outcome = OutcomeRemoved
				break
			}
			if target != item.Quantity {
				if err := tx.Carts().UpdateItemQuantity(ctx, item.ID, target); err != nil {
					return storageErr("cart item", err)
				}
				item.Quantity = target
			}
			item.Product = *product
			result.Item = item
			result.Outcome = OutcomeUpdated
		}

		result.CartItemCount, err = tx.Carts().SumQuantity(ctx, cartID)
		return storageErr("cart", err)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// targetQuantity falls back to current when a set value does not parse.
func targetQuantity(current int, action Action, raw string) int {
	switch action {
	case ActionIncrement:
		return current + 1
	case ActionDecrement:
		return current - 1
	default:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return current
		}
		return n
	}
}
