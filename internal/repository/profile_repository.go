package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"shophub/internal/domain"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileRepository defines the interface for user profile data access
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	// Upsert creates the user's profile or overwrites only the supplied columns
	Upsert(ctx context.Context, userID string, columns map[string]string) error
}

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `
		SELECT id, user_id, first_name, last_name, phone, address_line1, address_line2,
		       city, state, zip_code, country, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	profile := &domain.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Phone,
		&profile.AddressLine1,
		&profile.AddressLine2,
		&profile.City,
		&profile.State,
		&profile.ZipCode,
		&profile.Country,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, userID string, columns map[string]string) error {
	query, args := buildProfileUpsert(userID, columns)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// profileColumns whitelists the columns a caller may write
var profileColumns = map[string]bool{
	"first_name":    true,
	"last_name":     true,
	"phone":         true,
	"address_line1": true,
	"address_line2": true,
	"city":          true,
	"state":         true,
	"zip_code":      true,
	"country":       true,
}

// buildProfileUpsert renders a single INSERT ... ON CONFLICT statement whose
// update branch touches only the supplied columns. Unknown column names are
// dropped. Columns are emitted in sorted order so the SQL is stable.
// A new row stores empty values as NULL; an existing row is overwritten with
// exactly what was supplied.
func buildProfileUpsert(userID string, columns map[string]string) (string, []interface{}) {
	names := make([]string, 0, len(columns))
	for name := range columns {
		if profileColumns[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return `INSERT INTO user_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
			[]interface{}{userID}
	}

	args := []interface{}{userID}
	placeholders := []string{"$1"}
	for _, name := range names {
		var value interface{}
		if columns[name] != "" {
			value = columns[name]
		}
		args = append(args, value)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	assignments := make([]string, 0, len(names)+1)
	for _, name := range names {
		args = append(args, columns[name])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", name, len(args)))
	}
	assignments = append(assignments, "updated_at = NOW()")

	query := fmt.Sprintf(
		`INSERT INTO user_profiles (user_id, %s) VALUES (%s) ON CONFLICT (user_id) DO UPDATE SET %s`,
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(assignments, ", "),
	)

	return query, args
}
