// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/domain"
)

// Repository defines the interface for persisting completed reviews.
// In-progress dialogue sessions are deliberately not persisted; they live in
// the conversation engine's memory only.
type Repository interface {
	// CreateReview stores a completed review.
	CreateReview(ctx context.Context, review *domain.Review) error

	// ListReviews returns reviews ordered newest first. A limit <= 0 means
	// no limit.
	ListReviews(ctx context.Context, limit int) ([]*domain.Review, error)

	// CountReviews returns the total number of stored reviews.
	CountReviews(ctx context.Context) (int64, error)

	// Ping verifies database connectivity and returns an error if the
	// database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
