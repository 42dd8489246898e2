package services_test

import (
	"context"
	"sync"
	"testing"

	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"
	"storefront-service/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store     *repository.MemoryStore
	sessions  *session.MemoryLookup
	publisher *recordingPublisher
	carts     services.CartService
	checkout  services.CheckoutService
	orders    services.OrderService
	products  services.ProductService
}

func newFixture(t *testing.T, opts services.CheckoutOptions) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	sessions := session.NewMemoryLookup()
	pub := &recordingPublisher{}
	return &fixture{
		store:     store,
		sessions:  sessions,
		publisher: pub,
		carts:     services.NewCartService(store, sessions, zap.NewNop()),
		checkout:  services.NewCheckoutService(store, pub, opts, zap.NewNop()),
		orders:    services.NewOrderService(store.Orders()),
		products:  services.NewProductService(store),
	}
}

func (f *fixture) product(t *testing.T, name, price string, stock int) models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		SKU:      "SKU-" + name,
		Price:    decimal.RequireFromString(price),
		StockQty: stock,
		Brand:    "Acme",
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return *p
}

func (f *fixture) cart(t *testing.T) *models.Cart {
	t.Helper()
	cart, err := f.carts.ResolveCart(context.Background(), uuid.NewString())
	require.NoError(t, err)
	return cart
}

func (f *fixture) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.store.Products().FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockQty
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.OrderPlacedEvent
	err    error
}

func (r *recordingPublisher) PublishOrderPlaced(_ context.Context, evt models.OrderPlacedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return r.err
}

func (r *recordingPublisher) Close() error { return nil }

// failingStore fails ClearItems, the last write of a checkout.
type failingStore struct {
	repository.Store
	err error
}

func (f *failingStore) Carts() repository.CartRepository {
	return failingCarts{CartRepository: f.Store.Carts(), err: f.err}
}

func (f *failingStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return f.Store.WithTx(ctx, func(tx repository.Store) error {
		return fn(&failingStore{Store: tx, err: f.err})
	})
}

type failingCarts struct {
	repository.CartRepository
	err error
}

func (c failingCarts) ClearItems(context.Context, uuid.UUID) error { return c.err }
