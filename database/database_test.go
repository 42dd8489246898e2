package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const catalog = `products:
  - name: Headphones
    sku: HP-1
    price: "99.99"
    stock_qty: 10
    brand: Acme
  - name: Lamp
    sku: LMP-1
    price: 19.5
    stock_qty: 0
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSeedProducts(t *testing.T) {
	products, err := LoadSeedProducts(writeSeed(t, catalog))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "HP-1", products[0].SKU)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("99.99")))
	assert.True(t, products[1].Price.Equal(decimal.RequireFromString("19.5")))
	assert.Equal(t, 0, products[1].StockQty)
}

func TestLoadSeedProducts_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad price":      "products:\n  - {name: A, sku: A, price: abc}\n",
		"negative stock": "products:\n  - {name: A, sku: A, price: \"1\", stock_qty: -1}\n",
		"missing sku":    "products:\n  - {name: A, price: \"1\"}\n",
		"not yaml":       "products: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSeedProducts(writeSeed(t, body))
			assert.Error(t, err)
		})
	}

	_, err := LoadSeedProducts(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeedProducts_OnlyIntoEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	products, err := LoadSeedProducts(writeSeed(t, catalog))
	require.NoError(t, err)

	n, err := SeedProducts(ctx, store, products, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = SeedProducts(ctx, store, []models.Product{{Name: "X", SKU: "X"}}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	count, err := store.Products().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSeedProducts_DuplicateRollsBack(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	dupes := []models.Product{{Name: "A", SKU: "S"}, {Name: "B", SKU: "S"}}

	_, err := SeedProducts(ctx, store, dupes, zap.NewNop())
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	count, err := store.Products().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(nil))

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectClose()
	assert.NoError(t, Close(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

