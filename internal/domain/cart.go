package domain

import "time"

// CartItem is one line of a user's cart. There is at most one per (user, product).
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CartItemWithProduct is a cart line joined with the live catalog row
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}
