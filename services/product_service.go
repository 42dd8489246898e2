package services

import (
	"context"
	"errors"
	"strings"

	"storefront-service/models"
	"storefront-service/repository"

	"github.com/google/uuid"
)

type ProductListing struct {
	Products []models.Product `json:"products"`
	// CartQuantities holds the cart quantity of each listed product that is in the cart.
	CartQuantities map[uuid.UUID]int `json:"cart_quantities"`
	CartItemCount  int               `json:"cart_item_count"`
}

type ProductDetail struct {
	Product       models.Product   `json:"product"`
	CartItem      *models.CartItem `json:"cart_item"`
	CartItemCount int              `json:"cart_item_count"`
}

// ProductService serves the catalog annotated with the caller's cart state.
type ProductService interface {
	ListProducts(ctx context.Context, query string, cartID uuid.UUID) (*ProductListing, error)
	GetProduct(ctx context.Context, id, cartID uuid.UUID) (*ProductDetail, error)
}

type productServiceImpl struct {
	store repository.Store
}

func NewProductService(store repository.Store) ProductService {
	return &productServiceImpl{store: store}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, query string, cartID uuid.UUID) (*ProductListing, error) {
	products, err := s.store.Products().Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, storageErr("products", err)
	}
	items, err := s.store.Carts().ListItems(ctx, cartID)
	if err != nil {
		return nil, storageErr("cart", err)
	}

	listing := &ProductListing{
		Products:       products,
		CartQuantities: map[uuid.UUID]int{},
	}
	if listing.Products == nil {
		listing.Products = []models.Product{}
	}
	listed := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		listed[p.ID] = true
	}
	for _, item := range items {
		listing.CartItemCount += item.Quantity
		if listed[item.ProductID] {
			listing.CartQuantities[item.ProductID] = item.Quantity
		}
	}
	return listing, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id, cartID uuid.UUID) (*ProductDetail, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("product", err)
	}
	detail := &ProductDetail{Product: *product}

	item, err := s.store.Carts().FindItem(ctx, cartID, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, storageErr("cart item", err)
	default:
		item.Product = *product
		detail.CartItem = item
	}

	detail.CartItemCount, err = s.store.Carts().SumQuantity(ctx, cartID)
	if err != nil {
		return nil, storageErr("cart", err)
	}
	return detail, nil
}
