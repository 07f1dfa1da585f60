package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shophub/internal/domain"
)

var (
	ErrReviewExists = errors.New("you have already reviewed this product")
)

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Create stores the review and fills in its ID and timestamps.
	// Returns ErrReviewExists if the user already reviewed the product.
	Create(ctx context.Context, review *domain.Review) error
	ListByProduct(ctx context.Context, productID int64) ([]*domain.Review, error)
	Summary(ctx context.Context, productID int64) (*domain.ReviewSummary, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (user_id, product_id, rating, title, comment)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		review.UserID,
		review.ProductID,
		review.Rating,
		review.Title,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReviewExists
		}
		if isForeignKeyViolation(err) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListByProduct returns the product's reviews newest first, with the
// reviewer's profile name when the reviewer has a profile
func (r *reviewRepository) ListByProduct(ctx context.Context, productID int64) ([]*domain.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.product_id, r.rating, r.title, r.comment,
		       up.first_name, up.last_name, r.created_at, r.updated_at
		FROM reviews r
		LEFT JOIN user_profiles up ON up.user_id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review := &domain.Review{}
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProductID,
			&review.Rating,
			&review.Title,
			&review.Comment,
			&review.FirstName,
			&review.LastName,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) Summary(ctx context.Context, productID int64) (*domain.ReviewSummary, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*)
		FROM reviews
		WHERE product_id = $1
	`

	summary := &domain.ReviewSummary{}
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&summary.AverageRating, &summary.TotalCount)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize reviews: %w", err)
	}

	return summary, nil
}
