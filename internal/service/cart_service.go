package service

import (
	"context"
	"errors"

	"shophub/internal/domain"
	"shophub/internal/repository"
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// CartService defines the per-user cart operations
type CartService interface {
	ListCart(ctx context.Context, userID string) ([]*domain.CartItemWithProduct, error)
	// AddToCart creates the line or merges into the existing one.
	// created reports whether a new line was inserted.
	AddToCart(ctx context.Context, userID string, productID int64, quantity int) (item *domain.CartItem, created bool, err error)
	// UpdateQuantity sets a line's quantity; zero removes the line.
	UpdateQuantity(ctx context.Context, userID string, itemID int64, quantity int) error
	RemoveFromCart(ctx context.Context, userID string, itemID int64) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) ListCart(ctx context.Context, userID string) ([]*domain.CartItemWithProduct, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

func (s *cartService) AddToCart(ctx context.Context, userID string, productID int64, quantity int) (*domain.CartItem, bool, error) {
	if quantity < 1 {
		return nil, false, ErrInvalidQuantity
	}

	// Separates "no such product" from "not enough stock"; the write itself
	// re-checks stock atomically.
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, false, err
	}

	return s.cartRepo.AddOrMerge(ctx, userID, productID, quantity)
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID string, itemID int64, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	if quantity == 0 {
		err := s.cartRepo.Delete(ctx, userID, itemID)
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil
		}
		return err
	}

	return s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID string, itemID int64) error {
	return s.cartRepo.Delete(ctx, userID, itemID)
}
