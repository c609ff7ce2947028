package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/config"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/convo"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/domain"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/feed"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/shared"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/twilio"
)

// WebhookHandler handles inbound Twilio WhatsApp messages.
type WebhookHandler struct {
	*Handler
	engine *convo.Engine
	hub    *feed.Hub
	cfg    *config.Config
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(base *Handler, engine *convo.Engine, hub *feed.Hub, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{
		Handler: base,
		engine:  engine,
		hub:     hub,
		cfg:     cfg,
	}
}

// RegisterRoutes registers the webhook route.
func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook", h.HandleInbound)
}

// HandleInbound runs one inbound message through the dialogue engine and
// answers with TwiML. A completed dialogue is persisted and broadcast before
// the reply goes out; persistence failure is logged but never turns into a
// webhook error, since the reply to the contact must still be delivered.
func (h *WebhookHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	if h.cfg.Twilio.ValidateSignature {
		if err := twilio.VerifySignature(
			h.cfg.Twilio.AuthToken,
			h.webhookURL(r),
			r.PostForm,
			r.Header.Get("X-Twilio-Signature"),
		); err != nil {
			slog.Warn("Rejected webhook with bad signature", "error", err, "ip", r.RemoteAddr)
			Error(w, http.StatusForbidden, "signature verification failed")
			return
		}
	}

	// Twilio sends the sender as e.g. "whatsapp:+14155551234"; it is kept
	// as-is as the contact identifier.
	contactID := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if contactID == "" {
		Error(w, http.StatusBadRequest, "missing From parameter")
		return
	}

	result := h.engine.ProcessIncomingMessage(contactID, body)

	if result.Completed && result.Review != nil {
		if err := h.persistReview(r.Context(), result.Review); err != nil {
			slog.Error("Failed to persist completed review",
				"error", err,
				"contact_id", result.Review.ContactID,
				"product_name", result.Review.ProductName)
		} else {
			slog.Info("Review recorded",
				"review_id", result.Review.ID,
				"contact_id", result.Review.ContactID,
				"product_name", result.Review.ProductName)
			h.hub.Broadcast(r.Context(), result.Review)
		}
	}

	if err := twilio.NewMessagingResponse(result.Reply).Write(w); err != nil {
		slog.Error("Failed to write TwiML response", "error", err)
	}
}

// persistReview inserts the review, retrying with exponential backoff on
// SQLite concurrency errors.
func (h *WebhookHandler) persistReview(ctx context.Context, review *domain.Review) error {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var err error
	for i := 0; i < maxRetries; i++ {
		err = h.repo.CreateReview(ctx, review)
		if err == nil {
			return nil
		}
		if !shared.IsSQLiteConflictError(err) || i == maxRetries-1 {
			return err
		}

		delay := baseDelay * time.Duration(1<<i)
		slog.Debug("Review insert hit a locked database, retrying",
			"contact_id", review.ContactID,
			"attempt", i+1,
			"delay", delay)
		time.Sleep(delay)
	}
	return err
}

func (h *WebhookHandler) webhookURL(r *http.Request) string {
	if h.cfg.Twilio.PublicURL != "" {
		return h.cfg.Twilio.PublicURL
	}
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
