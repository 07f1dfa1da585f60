package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shophub/internal/domain"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("not enough stock")
)

// addOrMergeCartItemQuery inserts a new line when stock covers the requested
// quantity, or adds to the existing line when stock covers the merged total.
// It returns no row when neither condition holds.
const addOrMergeCartItemQuery = `
		INSERT INTO cart_items (user_id, product_id, quantity)
		SELECT $1, p.id, $3
		FROM products p
		WHERE p.id = $2 AND p.stock >= $3
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		WHERE cart_items.quantity + EXCLUDED.quantity <= (
			SELECT stock FROM products WHERE id = EXCLUDED.product_id
		)
		RETURNING id, user_id, product_id, quantity, created_at, updated_at, (xmax = 0) AS inserted
	`

const updateCartItemQuantityQuery = `
		UPDATE cart_items c
		SET quantity = $3, updated_at = NOW()
		FROM products p
		WHERE c.id = $1 AND c.user_id = $2 AND p.id = c.product_id AND p.stock >= $3
	`

// CartRepository defines the interface for cart data access. Every method is
// scoped to a user; rows owned by other users never match.
type CartRepository interface {
	// AddOrMerge atomically creates the (user, product) line or increases its
	// quantity. created reports whether a new line was inserted.
	// Returns ErrInsufficientStock when stock cannot cover the result.
	AddOrMerge(ctx context.Context, userID string, productID int64, quantity int) (item *domain.CartItem, created bool, err error)
	// UpdateQuantity sets the quantity of an existing line.
	// Returns ErrCartItemNotFound or ErrInsufficientStock.
	UpdateQuantity(ctx context.Context, userID string, itemID int64, quantity int) error
	Delete(ctx context.Context, userID string, itemID int64) error
	FindByID(ctx context.Context, userID string, itemID int64) (*domain.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.CartItemWithProduct, error)
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) AddOrMerge(ctx context.Context, userID string, productID int64, quantity int) (*domain.CartItem, bool, error) {
	item := &domain.CartItem{}
	var created bool

	err := r.db.QueryRowContext(ctx, addOrMergeCartItemQuery, userID, productID, quantity).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
		&created,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, ErrInsufficientStock
		}
		if isForeignKeyViolation(err) {
			return nil, false, ErrProductNotFound
		}
		return nil, false, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, created, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID string, itemID int64, quantity int) error {
	result, err := r.db.ExecContext(ctx, updateCartItemQuantityQuery, itemID, userID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Nothing updated: either the line is not the user's or stock is short.
	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM cart_items WHERE id = $1 AND user_id = $2)`,
		itemID, userID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check cart item: %w", err)
	}

	if !exists {
		return ErrCartItemNotFound
	}
	return ErrInsufficientStock
}

func (r *cartRepository) Delete(ctx context.Context, userID string, itemID int64) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, userID string, itemID int64) (*domain.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE id = $1 AND user_id = $2
	`

	item := &domain.CartItem{}
	err := r.db.QueryRowContext(ctx, query, itemID, userID).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}

	return item, nil
}

// ListByUser returns the user's cart lines joined with the current product rows, newest first
func (r *cartRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CartItemWithProduct, error) {
	query := `
		SELECT
			c.id, c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at,
			p.id, p.name, p.description, p.price, p.image, p.category, p.stock, p.created_at, p.updated_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []*domain.CartItemWithProduct{}
	for rows.Next() {
		item := &domain.CartItemWithProduct{}
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
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
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}
