package service

import (
	"context"
	"errors"

	"shophub/internal/domain"
	"shophub/internal/repository"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ReviewService defines the product review operations
type ReviewService interface {
	ListReviews(ctx context.Context, productID int64) ([]*domain.Review, error)
	AddReview(ctx context.Context, userID string, productID int64, rating int, title, comment *string) (*domain.Review, error)
	ReviewSummary(ctx context.Context, productID int64) (*domain.ReviewSummary, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func (s *reviewService) ListReviews(ctx context.Context, productID int64) ([]*domain.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *reviewService) AddReview(ctx context.Context, userID string, productID int64, rating int, title, comment *string) (*domain.Review, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Title:     nullIfEmpty(title),
		Comment:   nullIfEmpty(comment),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) ReviewSummary(ctx context.Context, productID int64) (*domain.ReviewSummary, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	return s.reviewRepo.Summary(ctx, productID)
}

// nullIfEmpty stores blank optional text as NULL
func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
