package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		contact_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		product_name TEXT NOT NULL,
		product_review TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_created ON reviews(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_reviews_contact ON reviews(contact_id);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateReview stores a completed review. A missing ID or CreatedAt is
// filled in before insert.
func (s *SQLiteStore) CreateReview(ctx context.Context, review *domain.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	query := `
	INSERT INTO reviews (id, contact_id, user_name, product_name, product_review, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		review.ID, review.ContactID, review.UserName,
		review.ProductName, review.ProductReview, review.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListReviews returns reviews ordered newest first.
func (s *SQLiteStore) ListReviews(ctx context.Context, limit int) ([]*domain.Review, error) {
	query := `
		SELECT id, contact_id, user_name, product_name, product_review, created_at
		FROM reviews ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		var review domain.Review
		var createdAt int64

		if err := rows.Scan(
			&review.ID, &review.ContactID, &review.UserName,
			&review.ProductName, &review.ProductReview, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		review.CreatedAt = time.Unix(createdAt, 0)
		reviews = append(reviews, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// CountReviews returns the total number of stored reviews.
func (s *SQLiteStore) CountReviews(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}
