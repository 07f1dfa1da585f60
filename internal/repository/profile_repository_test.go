package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBuildProfileUpsert(t *testing.T) {
	query, args := buildProfileUpsert("u1", map[string]string{
		"state":    "CA",
		"city":     "Oakland",
		"is_admin": "true",
	})

	expected := `INSERT INTO user_profiles (user_id, city, state) VALUES ($1, $2, $3) ` +
		`ON CONFLICT (user_id) DO UPDATE SET city = $4, state = $5, updated_at = NOW()`
	if query != expected {
		t.Errorf("unexpected query:\n got: %s\nwant: %s", query, expected)
	}

	if !reflect.DeepEqual(args, []interface{}{"u1", "Oakland", "CA", "Oakland", "CA"}) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildProfileUpsertBindsEmptyInsertValuesAsNull(t *testing.T) {
	_, args := buildProfileUpsert("u1", map[string]string{"phone": "", "city": "Oakland"})

	if !reflect.DeepEqual(args, []interface{}{"u1", "Oakland", nil, "Oakland", ""}) {
		t.Errorf("unexpected args: %#v", args)
	}
}

func TestBuildProfileUpsertWithoutFields(t *testing.T) {
	query, args := buildProfileUpsert("u1", nil)

	if query != `INSERT INTO user_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING` {
		t.Errorf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "u1" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestProfileRepository_MissingProfile(t *testing.T) {
	requireDB(t)
	resetTables(t)

	_, err := NewProfileRepository(testDB).FindByUserID(context.Background(), "nobody")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

// Feature: storefront, Property 3: Partial profile saves do not clobber other fields
func TestProperty_PartialProfileSavesKeepOtherFields(t *testing.T) {
	requireDB(t)
	resetTables(t)

	repo := NewProfileRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("saving city then state keeps both", prop.ForAll(
		func(userID string, city string, state string) bool {
			ctx := context.Background()

			if err := repo.Upsert(ctx, userID, map[string]string{"city": city}); err != nil {
				t.Logf("FAIL: first save: %v", err)
				return false
			}
			if err := repo.Upsert(ctx, userID, map[string]string{"state": state}); err != nil {
				t.Logf("FAIL: second save: %v", err)
				return false
			}

			profile, err := repo.FindByUserID(ctx, userID)
			if err != nil {
				t.Logf("FAIL: find: %v", err)
				return false
			}

			if profile.City == nil || *profile.City != city {
				t.Logf("FAIL: city lost: %v", profile.City)
				return false
			}
			if profile.State == nil || *profile.State != state {
				t.Logf("FAIL: state not saved: %v", profile.State)
				return false
			}
			if profile.FirstName != nil {
				t.Logf("FAIL: unsupplied first_name is %q", *profile.FirstName)
				return false
			}

			_, _ = testDB.Exec("DELETE FROM user_profiles WHERE user_id = $1", userID)
			return true
		},
		gen.Identifier(),
		gen.RegexMatch(`[A-Z][a-z]{2,20}`),
		gen.RegexMatch(`[A-Z]{2}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProfileRepository_EmptySaveCreatesRowOnce(t *testing.T) {
	requireDB(t)
	resetTables(t)

	repo := NewProfileRepository(testDB)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "u1", map[string]string{"phone": "555-0100"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := repo.Upsert(ctx, "u1", map[string]string{}); err != nil {
		t.Fatalf("empty save failed: %v", err)
	}

	profile, err := repo.FindByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if profile.Phone == nil || *profile.Phone != "555-0100" {
		t.Errorf("empty save changed phone: %v", profile.Phone)
	}
}

func TestProfileRepository_EmptyValuesOnFirstSaveAreNull(t *testing.T) {
	requireDB(t)
	resetTables(t)

	repo := NewProfileRepository(testDB)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "u1", map[string]string{"phone": "", "city": "Oakland"}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	profile, err := repo.FindByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if profile.Phone != nil {
		t.Errorf("expected NULL phone on insert, got %q", *profile.Phone)
	}
	if profile.City == nil || *profile.City != "Oakland" {
		t.Errorf("unexpected city: %v", profile.City)
	}

	if err := repo.Upsert(ctx, "u1", map[string]string{"city": ""}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	profile, err = repo.FindByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if profile.City == nil || *profile.City != "" {
		t.Errorf("expected an update to store the empty string, got %v", profile.City)
	}
}
