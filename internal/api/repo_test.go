package api

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/domain"
)

var errDatabaseDown = errors.New("database down")

// fakeRepo is an in-memory Repository for handler tests.
type fakeRepo struct {
	mu        sync.Mutex
	reviews   []*domain.Review
	createErr error
	pingErr   error
}

func (f *fakeRepo) CreateReview(_ context.Context, review *domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if review.ID == "" {
		review.ID = "review-" + strconv.Itoa(len(f.reviews)+1)
	}
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeRepo) ListReviews(_ context.Context, limit int) ([]*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Review, len(f.reviews))
	copy(out, f.reviews)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) CountReviews(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.reviews)), nil
}

func (f *fakeRepo) Ping(_ context.Context) error {
	return f.pingErr
}

func (f *fakeRepo) Close() error {
	return nil
}

func (f *fakeRepo) stored() []*domain.Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Review, len(f.reviews))
	copy(out, f.reviews)
	return out
}
