package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"shophub/internal/domain"
)

func TestReviewRepository_OneReviewPerUserAndProduct(t *testing.T) {
	requireDB(t)
	resetTables(t)

	product := createTestProduct(t, "kettle", "Home", "30.00", 2)
	repo := NewReviewRepository(testDB)
	ctx := context.Background()

	title := "Great"
	review := &domain.Review{UserID: "u1", ProductID: product.ID, Rating: 5, Title: &title}
	if err := repo.Create(ctx, review); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if review.ID == 0 {
		t.Fatal("expected generated review ID")
	}

	again := &domain.Review{UserID: "u1", ProductID: product.ID, Rating: 1}
	if err := repo.Create(ctx, again); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}

	reviews, err := repo.ListByProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Rating != 5 {
		t.Fatalf("expected the original review only, got %+v", reviews)
	}
}

func TestReviewRepository_ListJoinsProfileNames(t *testing.T) {
	requireDB(t)
	resetTables(t)

	product := createTestProduct(t, "kettle", "Home", "30.00", 2)
	repo := NewReviewRepository(testDB)
	ctx := context.Background()

	if err := NewProfileRepository(testDB).Upsert(ctx, "named", map[string]string{"first_name": "Ada", "last_name": "Lovelace"}); err != nil {
		t.Fatalf("profile save failed: %v", err)
	}

	for _, userID := range []string{"named", "anonymous"} {
		if err := repo.Create(ctx, &domain.Review{UserID: userID, ProductID: product.ID, Rating: 4}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	reviews, err := repo.ListByProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}

	// Newest first.
	if reviews[0].UserID != "anonymous" || reviews[0].FirstName != nil {
		t.Errorf("expected anonymous review without a name first, got %+v", reviews[0])
	}
	if reviews[1].FirstName == nil || *reviews[1].FirstName != "Ada" || *reviews[1].LastName != "Lovelace" {
		t.Errorf("expected profile name on named review, got %+v", reviews[1])
	}
}

func TestReviewRepository_Summary(t *testing.T) {
	requireDB(t)
	resetTables(t)

	product := createTestProduct(t, "kettle", "Home", "30.00", 2)
	repo := NewReviewRepository(testDB)
	ctx := context.Background()

	empty, err := repo.Summary(ctx, product.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if empty.TotalCount != 0 || empty.AverageRating != 0 {
		t.Errorf("expected zero summary, got %+v", empty)
	}

	for i, rating := range []int{5, 4, 2} {
		review := &domain.Review{UserID: string(rune('a' + i)), ProductID: product.ID, Rating: rating}
		if err := repo.Create(ctx, review); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	summary, err := repo.Summary(ctx, product.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalCount != 3 || math.Abs(summary.AverageRating-11.0/3.0) > 1e-9 {
		t.Errorf("unexpected summary %+v", summary)
	}
}
