package repository

import (
	"context"
	"errors"

	"storefront-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// ProductRepository defines data access for the catalog and stock.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// LockByID reads the product and holds a write lock until the transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

// CartRepository defines data access for carts and their line items.
type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	// Lock reads the cart and holds a write lock until the transaction ends.
	Lock(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	// ListItems returns the cart lines in insertion order with products loaded.
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	ClearItems(ctx context.Context, cartID uuid.UUID) error
	SumQuantity(ctx context.Context, cartID uuid.UUID) (int, error)
}

// OrderRepository defines data access for placed orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// FindAll returns every order newest first with items and products loaded.
	FindAll(ctx context.Context) ([]models.Order, error)
}

// Store groups the repositories and runs units of work across them.
type Store interface {
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	// WithTx runs fn in a transaction. Any error from fn rolls back every write made through tx.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
