package database

import (
	"context"
	"fmt"
	"os"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name     string `yaml:"name"`
	SKU      string `yaml:"sku"`
	Price    string `yaml:"price"`
	StockQty int    `yaml:"stock_qty"`
	Brand    string `yaml:"brand"`
}

// LoadSeedProducts reads a YAML catalog of the form
//
//	products:
//	  - {name: Lamp, sku: LMP-1, price: "19.99", stock_qty: 4, brand: Acme}
func LoadSeedProducts(path string) ([]models.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	products := make([]models.Product, 0, len(file.Products))
	for i, p := range file.Products {
		if p.Name == "" || p.SKU == "" {
			return nil, fmt.Errorf("seed product %d: name and sku are required", i)
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("seed product %s: invalid price %q", p.SKU, p.Price)
		}
		if price.IsNegative() || p.StockQty < 0 {
			return nil, fmt.Errorf("seed product %s: price and stock must be non-negative", p.SKU)
		}
		products = append(products, models.Product{
			Name:     p.Name,
			SKU:      p.SKU,
			Price:    price,
			StockQty: p.StockQty,
			Brand:    p.Brand,
		})
	}
	return products, nil
}

// SeedProducts inserts products only into an empty catalog. It returns how many were created.
func SeedProducts(ctx context.Context, store repository.Store, products []models.Product, logger *zap.Logger) (int, error) {
	n, err := store.Products().Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("Catalog already populated, skipping seed", zap.Int64("products", n))
		return 0, nil
	}

	err = store.WithTx(ctx, func(tx repository.Store) error {
		for i := range products {
			if err := tx.Products().Create(ctx, &products[i]); err != nil {
				return fmt.Errorf("seed %s: %w", products[i].SKU, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.Info("Catalog seeded", zap.Int("products", len(products)))
	return len(products), nil
}
