package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a product, annotated with the reviewer's
// profile name when one exists.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Title     *string   `json:"title" db:"title"`
	Comment   *string   `json:"comment" db:"comment"`
	FirstName *string   `json:"first_name" db:"first_name"`
	LastName  *string   `json:"last_name" db:"last_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReviewSummary contains aggregate review statistics for a product
type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalCount    int     `json:"total_count"`
}
