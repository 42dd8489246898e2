package services

import (
	"context"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/google/uuid"
)

// OrderService is the read side of placed orders.
type OrderService interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type orderServiceImpl struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderServiceImpl{repo: repo}
}

// ListOrders returns every order newest first, unpaginated.
func (s *orderServiceImpl) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storageErr("orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("order", err)
	}
	return order, nil
}
