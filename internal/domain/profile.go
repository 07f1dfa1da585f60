package domain

import "time"

// UserProfile holds the optional shipping and contact details of a user.
// Every field is nullable; a user without a saved profile is represented by
// the zero value, which encodes as an empty JSON object.
type UserProfile struct {
	ID           *int64     `json:"id,omitempty" db:"id"`
	UserID       string     `json:"user_id,omitempty" db:"user_id"`
	FirstName    *string    `json:"first_name,omitempty" db:"first_name"`
	LastName     *string    `json:"last_name,omitempty" db:"last_name"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	AddressLine1 *string    `json:"address_line1,omitempty" db:"address_line1"`
	AddressLine2 *string    `json:"address_line2,omitempty" db:"address_line2"`
	City         *string    `json:"city,omitempty" db:"city"`
	State        *string    `json:"state,omitempty" db:"state"`
	ZipCode      *string    `json:"zip_code,omitempty" db:"zip_code"`
	Country      *string    `json:"country,omitempty" db:"country"`
	CreatedAt    *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// ProfileUpdate carries the fields supplied in a save request. A nil field was
// not supplied and must be left untouched.
type ProfileUpdate struct {
	FirstName    *string `json:"first_name" validate:"omitempty,max=100"`
	LastName     *string `json:"last_name" validate:"omitempty,max=100"`
	Phone        *string `json:"phone" validate:"omitempty,max=50"`
	AddressLine1 *string `json:"address_line1" validate:"omitempty,max=255"`
	AddressLine2 *string `json:"address_line2" validate:"omitempty,max=255"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,max=100"`
	ZipCode      *string `json:"zip_code" validate:"omitempty,max=20"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
}

// Columns returns the supplied fields keyed by column name
func (u ProfileUpdate) Columns() map[string]string {
	columns := make(map[string]string)
	set := func(column string, value *string) {
		if value != nil {
			columns[column] = *value
		}
	}

	set("first_name", u.FirstName)
	set("last_name", u.LastName)
	set("phone", u.Phone)
	set("address_line1", u.AddressLine1)
	set("address_line2", u.AddressLine2)
	set("city", u.City)
	set("state", u.State)
	set("zip_code", u.ZipCode)
	set("country", u.Country)

	return columns
}
