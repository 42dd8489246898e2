package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore implements Store on a postgres connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Products() ProductRepository { return NewGormProductRepository(s.db) }
func (s *GormStore) Carts() CartRepository       { return NewGormCartRepository(s.db) }
func (s *GormStore) Orders() OrderRepository     { return NewGormOrderRepository(s.db) }

func (s *GormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
