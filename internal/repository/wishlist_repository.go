package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shophub/internal/domain"
)

var (
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrWishlistItemExists   = errors.New("product already in wishlist")
)

// WishlistRepository defines the interface for wishlist data access
type WishlistRepository interface {
	// Add saves the product for the user and returns the new row ID.
	// Returns ErrWishlistItemExists if the user already saved the product.
	Add(ctx context.Context, userID string, productID int64) (int64, error)
	Delete(ctx context.Context, userID string, itemID int64) error
	ListByUser(ctx context.Context, userID string) ([]*domain.WishlistItem, error)
}

type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository creates a new instance of WishlistRepository
func NewWishlistRepository(db *sql.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Add(ctx context.Context, userID string, productID int64) (int64, error) {
	query := `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrWishlistItemExists
		}
		if isForeignKeyViolation(err) {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return id, nil
}

func (r *wishlistRepository) Delete(ctx context.Context, userID string, itemID int64) error {
	query := `DELETE FROM wishlists WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrWishlistItemNotFound
	}

	return nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WishlistItem, error) {
	query := `
		SELECT
			w.id, w.user_id, w.created_at,
			p.id, p.name, p.description, p.price, p.image, p.category, p.stock, p.created_at, p.updated_at
		FROM wishlists w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC, w.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	items := []*domain.WishlistItem{}
	for rows.Next() {
		item := &domain.WishlistItem{}
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.CreatedAt,
			&item.Product.ID,
			&item.Product.Name,
			&item.Product.Description,
			&item.Product.Price,
			&item.Product.Image,
			&item.Product.Category,
			&item.Product.Stock,
			&item.Product.CreatedAt,
			&item.Product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist: %w", err)
	}

	return items, nil
}
