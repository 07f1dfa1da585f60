package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shophub/internal/domain"
	"shophub/internal/repository"
)

// SuggestionLimit caps the number of related products returned for a product
const SuggestionLimit = 8

var (
	ErrSearchCriteriaRequired = errors.New("search query or category required")
)

// CatalogService defines the read-only product catalog operations
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	SearchProducts(ctx context.Context, query, category string) ([]*domain.Product, error)
	SuggestProducts(ctx context.Context, id int64) ([]*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// SearchProducts requires a query, a category, or both. The "All" category
// counts as criteria but does not filter.
func (s *catalogService) SearchProducts(ctx context.Context, query, category string) ([]*domain.Product, error) {
	query = strings.TrimSpace(query)
	category = strings.TrimSpace(category)

	if query == "" && category == "" {
		return nil, ErrSearchCriteriaRequired
	}

	return s.productRepo.Search(ctx, query, category)
}

func (s *catalogService) SuggestProducts(ctx context.Context, id int64) ([]*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.productRepo.Suggestions(ctx, product, SuggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest products: %w", err)
	}

	return suggestions, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.Categories(ctx)
}
