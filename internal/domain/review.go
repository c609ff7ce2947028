// Package domain contains core domain types for the review collector.
package domain

import (
	"time"
)

// Review is a completed product review collected over WhatsApp.
type Review struct {
	ID            string    `json:"id"`
	ContactID     string    `json:"contact_id"`
	UserName      string    `json:"user_name"`
	ProductName   string    `json:"product_name"`
	ProductReview string    `json:"product_review"`
	CreatedAt     time.Time `json:"created_at"`
}
