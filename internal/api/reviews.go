package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/convo"
)

const maxListLimit = 500

// ReviewHandler serves the read-only review API backing the dashboard.
type ReviewHandler struct {
	*Handler
	sessions *convo.SessionStore
}

// NewReviewHandler creates a review API handler.
func NewReviewHandler(base *Handler, sessions *convo.SessionStore) *ReviewHandler {
	return &ReviewHandler{Handler: base, sessions: sessions}
}

// RegisterRoutes registers review API routes.
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/reviews", h.ListReviews)
		r.Get("/stats", h.Stats)
	})
}

// ListReviews returns stored reviews, newest first. An optional ?limit=N
// caps the result; it is clamped to a sane maximum.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			Error(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	if limit == 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	reviews, err := h.repo.ListReviews(r.Context(), limit)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	JSON(w, http.StatusOK, reviews)
}

// Stats reports stored review totals and currently open dialogues.
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	total, err := h.repo.CountReviews(r.Context())
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to count reviews")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"total_reviews": total,
		"open_sessions": h.sessions.Len(),
	})
}
