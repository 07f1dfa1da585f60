package domain

import "time"

// User is the identity resolved from a session token. It is owned by the
// identity service; the storefront only keys its rows by ID.
type User struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	GoogleSub      string         `json:"google_sub,omitempty"`
	GoogleUserData map[string]any `json:"google_user_data,omitempty"`
	LastSignedInAt *time.Time     `json:"last_signed_in_at,omitempty"`
	CreatedAt      *time.Time     `json:"created_at,omitempty"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}
