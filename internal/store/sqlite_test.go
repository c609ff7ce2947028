package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/domain"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "reviews.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Failed to close repository: %v", err)
		}
	})
	return repo
}

func TestCreateReview_FillsDefaults(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	review := &domain.Review{
		ContactID:     "whatsapp:+14155550100",
		UserName:      "Aditi",
		ProductName:   "Samsung TV",
		ProductReview: "Great sound quality, I love it!",
	}
	if err := repo.CreateReview(ctx, review); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}
	if review.ID == "" {
		t.Errorf("Expected generated review ID")
	}
	if review.CreatedAt.IsZero() {
		t.Errorf("Expected CreatedAt to be set")
	}
}

func TestListReviews_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, product := range []string{"Samsung TV", "Laptop", "Toaster"} {
		review := &domain.Review{
			ContactID:     "whatsapp:+14155550100",
			UserName:      "Aditi",
			ProductName:   product,
			ProductReview: "Solid product, does what it says",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.CreateReview(ctx, review); err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}
	}

	reviews, err := repo.ListReviews(ctx, 0)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(reviews) != 3 {
		t.Fatalf("Expected 3 reviews, got %d", len(reviews))
	}
	if reviews[0].ProductName != "Toaster" || reviews[2].ProductName != "Samsung TV" {
		t.Errorf("Expected newest first, got %q ... %q", reviews[0].ProductName, reviews[2].ProductName)
	}
}

func TestListReviews_Limit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		review := &domain.Review{
			ContactID:     "whatsapp:+14155550100",
			UserName:      "Bob",
			ProductName:   "Laptop",
			ProductReview: "Fast and quiet machine",
			CreatedAt:     time.Date(2025, 6, 1, 12, i, 0, 0, time.UTC),
		}
		if err := repo.CreateReview(ctx, review); err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}
	}

	reviews, err := repo.ListReviews(ctx, 2)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(reviews) != 2 {
		t.Errorf("Expected 2 reviews with limit, got %d", len(reviews))
	}
}

func TestCountReviews(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	count, err := repo.CountReviews(ctx)
	if err != nil {
		t.Fatalf("CountReviews failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 reviews in a fresh database, got %d", count)
	}

	review := &domain.Review{
		ContactID:     "whatsapp:+14155550100",
		UserName:      "Maya",
		ProductName:   "Galaxy Watch",
		ProductReview: "Battery lasts for days",
	}
	if err := repo.CreateReview(ctx, review); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	count, err = repo.CountReviews(ctx)
	if err != nil {
		t.Fatalf("CountReviews failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 review, got %d", count)
	}
}

func TestReviewRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := &domain.Review{
		ContactID:     "whatsapp:+918800000000",
		UserName:      "Aditi",
		ProductName:   "iPhone 15",
		ProductReview: "Camera is brilliant, battery could be better",
	}
	if err := repo.CreateReview(ctx, in); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	reviews, err := repo.ListReviews(ctx, 1)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("Expected 1 review, got %d", len(reviews))
	}

	out := reviews[0]
	if out.ID != in.ID ||
		out.ContactID != in.ContactID ||
		out.UserName != in.UserName ||
		out.ProductName != in.ProductName ||
		out.ProductReview != in.ProductReview {
		t.Errorf("Round trip mismatch: got %+v, want %+v", out, in)
	}
}
