package services

import (
	"bytes"
	"context"
	"sort"

	"storefront-service/events"
	"storefront-service/models"
	"storefront-service/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReviewLine struct {
	Item      models.CartItem `json:"item"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type Review struct {
	Lines []ReviewLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// CheckoutService reviews carts and turns them into orders.
type CheckoutService interface {
	Review(ctx context.Context, cartID uuid.UUID) (*Review, error)
	PlaceOrder(ctx context.Context, cartID uuid.UUID) (*models.Order, error)
}

type CheckoutOptions struct {
	// StrictStock rejects checkouts whose lines exceed current stock.
	StrictStock bool
}

type checkoutServiceImpl struct {
	store     repository.Store
	publisher events.Publisher
	opts      CheckoutOptions
	logger    *zap.Logger
}

func NewCheckoutService(store repository.Store, publisher events.Publisher, opts CheckoutOptions, logger *zap.Logger) CheckoutService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &checkoutServiceImpl{store: store, publisher: publisher, opts: opts, logger: logger}
}

func (s *checkoutServiceImpl) Review(ctx context.Context, cartID uuid.UUID) (*Review, error) {
	items, err := s.store.Carts().ListItems(ctx, cartID)
	if err != nil {
		return nil, storageErr("cart", err)
	}
	review := &Review{Lines: make([]ReviewLine, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		review.Lines = append(review.Lines, ReviewLine{Item: item, LineTotal: line})
		review.Total = review.Total.Add(line)
	}
	return review, nil
}

// PlaceOrder snapshots the cart into an order, decrements stock and empties
// the cart in one transaction. It returns ErrEmptyCart when there is nothing
// to order. Stock may go negative unless StrictStock is set.
func (s *checkoutServiceImpl) PlaceOrder(ctx context.Context, cartID uuid.UUID) (*models.Order, error) {
	var order *models.Order
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Carts().Lock(ctx, cartID); err != nil {
			return storageErr("cart", err)
		}
		items, err := tx.Carts().ListItems(ctx, cartID)
		if err != nil {
			return storageErr("cart", err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		products, err := lockProducts(ctx, tx, items)
		if err != nil {
			return err
		}

		order = &models.Order{Total: decimal.Zero, Items: make([]models.OrderItem, 0, len(items))}
		for _, item := range items {
			product := products[item.ProductID]
			if s.opts.StrictStock && product.StockQty < item.Quantity {
				return &StockConflictError{Product: product, Requested: item.Quantity}
			}
			line := models.OrderItem{ProductID: product.ID, Quantity: item.Quantity, Price: product.Price}
			order.Items = append(order.Items, line)
			order.Total = order.Total.Add(line.Subtotal())
		}

		if err := tx.Orders().Create(ctx, order); err != nil {
			return storageErr("order", err)
		}
		for _, line := range order.Items {
			if err := tx.Products().DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return storageErr("product", err)
			}
		}
		if err := tx.Carts().ClearItems(ctx, cartID); err != nil {
			return storageErr("cart", err)
		}

		for i := range order.Items {
			product := products[order.Items[i].ProductID]
			product.StockQty -= order.Items[i].Quantity
			order.Items[i].Product = product
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("cart_id", cartID.String()),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("lines", len(order.Items)),
	)
	if err := s.publisher.PublishOrderPlaced(ctx, models.NewOrderPlacedEvent(order)); err != nil {
		s.logger.Warn("Failed to publish order placed event",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
	return order, nil
}

// lockProducts takes row locks in ascending id order so concurrent
// checkouts over overlapping products cannot deadlock.
func lockProducts(ctx context.Context, tx repository.Store, items []models.CartItem) (map[uuid.UUID]models.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })

	products := make(map[uuid.UUID]models.Product, len(ids))
	for _, id := range ids {
		product, err := tx.Products().LockByID(ctx, id)
		if err != nil {
			return nil, storageErr("product", err)
		}
		products[id] = *product
	}
	return products, nil
}
