package service

import (
	"context"

	"shophub/internal/domain"
	"shophub/internal/repository"
)

// WishlistService defines the per-user wishlist operations
type WishlistService interface {
	ListWishlist(ctx context.Context, userID string) ([]*domain.WishlistItem, error)
	AddToWishlist(ctx context.Context, userID string, productID int64) (int64, error)
	RemoveFromWishlist(ctx context.Context, userID string, itemID int64) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates a new instance of WishlistService
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) ListWishlist(ctx context.Context, userID string) ([]*domain.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(ctx, userID)
}

func (s *wishlistService) AddToWishlist(ctx context.Context, userID string, productID int64) (int64, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return 0, err
	}

	return s.wishlistRepo.Add(ctx, userID, productID)
}

func (s *wishlistService) RemoveFromWishlist(ctx context.Context, userID string, itemID int64) error {
	return s.wishlistRepo.Delete(ctx, userID, itemID)
}
