package domain

import "time"

// WishlistItem is a product saved by a user, joined with the live catalog row
type WishlistItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Product   Product   `json:"product"`
}
