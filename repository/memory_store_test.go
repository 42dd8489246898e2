package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, store *repository.MemoryStore, name string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, SKU: name, Price: decimal.RequireFromString("10.00"), StockQty: stock}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func TestMemoryStore_SearchOrdersByName(t *testing.T) {
	store := repository.NewMemoryStore()
	seedProduct(t, store, "Zebra Mug", 1)
	seedProduct(t, store, "apple corer", 1)
	seedProduct(t, store, "Mug Warmer", 1)

	found, err := store.Products().Search(context.Background(), "MUG")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Mug Warmer", found[0].Name)
	assert.Equal(t, "Zebra Mug", found[1].Name)

	all, err := store.Products().Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStore_DuplicateSKU(t *testing.T) {
	store := repository.NewMemoryStore()
	seedProduct(t, store, "Lamp", 1)

	err := store.Products().Create(context.Background(), &models.Product{Name: "Lamp 2", SKU: "Lamp"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestMemoryStore_CartItemUniqueness(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	p := seedProduct(t, store, "Lamp", 3)
	cart := &models.Cart{}
	require.NoError(t, store.Carts().Create(ctx, cart))

	require.NoError(t, store.Carts().CreateItem(ctx, &models.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 1}))
	err := store.Carts().CreateItem(ctx, &models.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	items, err := store.Carts().ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lamp", items[0].Product.Name)
}

func TestMemoryStore_WithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	p := seedProduct(t, store, "Lamp", 3)
	cart := &models.Cart{}
	require.NoError(t, store.Carts().Create(ctx, cart))
	require.NoError(t, store.Carts().CreateItem(ctx, &models.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 2}))

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(tx repository.Store) error {
		require.NoError(t, tx.Products().DecrementStock(ctx, p.ID, 2))
		require.NoError(t, tx.Carts().ClearItems(ctx, cart.ID))
		require.NoError(t, tx.Orders().Create(ctx, &models.Order{Total: decimal.NewFromInt(20)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Products().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQty)

	n, err := store.Carts().SumQuantity(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	orders, err := store.Orders().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMemoryStore_OrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	p := seedProduct(t, store, "Lamp", 3)

	var ids []string
	for i := 0; i < 3; i++ {
		o := &models.Order{
			Total: decimal.NewFromInt(10),
			Items: []models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: p.Price}},
		}
		require.NoError(t, store.Orders().Create(ctx, o))
		ids = append(ids, o.ID.String())
		time.Sleep(time.Millisecond)
	}

	orders, err := store.Orders().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID.String())
	assert.Equal(t, ids[0], orders[2].ID.String())
	assert.Equal(t, "Lamp", orders[0].Items[0].Product.Name)
	assert.Equal(t, orders[0].ID, orders[0].Items[0].OrderID)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repository.NewMemoryStore().Products().Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
