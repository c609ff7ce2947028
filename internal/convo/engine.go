package convo

import (
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/domain"
)

// Review validation bounds.
const (
	minProductNameLength = 2
	minUserNameLength    = 2
	maxUserNameLength    = 50
	MinReviewLength      = 5
	MaxReviewLength      = 1000
)

// Result is the outcome of processing one inbound message. Review is set
// exactly once per finished dialogue, alongside Completed.
type Result struct {
	Reply     string
	Completed bool
	Review    *domain.Review
}

// Engine drives the review dialogue: global commands first, then step-local
// validation and extraction. It never fails for any string input; bad input
// always yields a re-prompt.
type Engine struct {
	store *SessionStore

	// contactLocks serializes processing per contact so duplicate webhook
	// deliveries cannot tear a session mid-transition. Distinct contacts
	// proceed in parallel.
	contactLocks sync.Map
}

// NewEngine creates a dialogue engine backed by the given session store.
func NewEngine(store *SessionStore) *Engine {
	return &Engine{store: store}
}

// ProcessIncomingMessage interprets one inbound message for a contact and
// returns the reply plus, on dialogue completion, the assembled review.
func (e *Engine) ProcessIncomingMessage(contactID, rawMessage string) Result {
	unlock := e.lockContact(contactID)
	defer unlock()

	raw := Normalize(rawMessage)
	lower := strings.ToLower(raw)

	if raw == "" {
		return Result{Reply: replyEmptyInput}
	}

	switch DetectCommand(lower) {
	case CommandHelp:
		return Result{Reply: replyHelp}
	case CommandCancel:
		e.store.Reset(contactID)
		return Result{Reply: replyCancelled}
	case CommandReset, CommandStart:
		e.store.Reset(contactID)
		e.store.Start(contactID)
		return Result{Reply: replyGreeting}
	case CommandStatus:
		return Result{Reply: replyStatus(e.store.GetOrCreate(contactID))}
	}

	sess := e.store.GetOrCreate(contactID)

	switch sess.Step {
	case domain.StepAwaitingProduct:
		return e.handleProduct(contactID, raw)
	case domain.StepAwaitingName:
		return e.handleName(contactID, raw, sess)
	case domain.StepAwaitingReview:
		return e.handleReview(contactID, raw, sess)
	default:
		// Unreachable through the store's own transitions; a session can
		// only end up here through corruption. Discard it and restart.
		slog.Warn("Session had unknown step, discarding", "contact_id", contactID, "step", sess.Step)
		e.store.Reset(contactID)
		return Result{Reply: replyConfused}
	}
}

func (e *Engine) handleProduct(contactID, raw string) Result {
	// A short, plain answer is taken as the product name directly; anything
	// longer goes through filler stripping.
	if !LooksLikeReview(raw) && len(strings.Fields(raw)) <= 3 && isSimpleText(raw) {
		productName := ExtractProductName(raw)
		e.transition(contactID, domain.StepAwaitingName, SessionUpdate{ProductName: &productName})
		return Result{Reply: replySimpleProductRecorded(productName)}
	}

	productName := ExtractProductName(raw)
	if utf8.RuneCountInString(productName) < minProductNameLength {
		return Result{Reply: replyUnclearProduct}
	}

	e.transition(contactID, domain.StepAwaitingName, SessionUpdate{ProductName: &productName})
	return Result{Reply: replyProductRecorded(productName)}
}

func (e *Engine) handleName(contactID, raw string, sess domain.Session) Result {
	if LooksLikeReview(raw) {
		return Result{Reply: replyNameLooksLikeReview}
	}

	userName := ExtractPersonName(raw)
	if n := utf8.RuneCountInString(userName); n < minUserNameLength || n > maxUserNameLength {
		return Result{Reply: replyInvalidName}
	}

	e.transition(contactID, domain.StepAwaitingReview, SessionUpdate{UserName: &userName})
	return Result{Reply: replyNameRecorded(userName, sess.ProductName)}
}

func (e *Engine) handleReview(contactID, raw string, sess domain.Session) Result {
	// Length bounds first, before any other inspection of the text.
	switch n := utf8.RuneCountInString(raw); {
	case n < MinReviewLength:
		return Result{Reply: replyReviewTooShort}
	case n > MaxReviewLength:
		return Result{Reply: replyReviewTooLong}
	}

	if wantsDifferentProduct(raw) {
		// Back to the product step: clear the product, keep the name.
		empty := ""
		e.transition(contactID, domain.StepAwaitingProduct, SessionUpdate{ProductName: &empty})
		return Result{Reply: replyChangeProduct}
	}

	review := &domain.Review{
		ContactID:     contactID,
		UserName:      sess.UserName,
		ProductName:   sess.ProductName,
		ProductReview: raw,
	}
	e.store.Reset(contactID)

	return Result{
		Reply:     replyReviewRecorded(sess.UserName, sess.ProductName, raw),
		Completed: true,
		Review:    review,
	}
}

func (e *Engine) transition(contactID string, step domain.Step, upd SessionUpdate) {
	upd.Step = &step
	e.store.Update(contactID, upd)
}

func (e *Engine) lockContact(contactID string) func() {
	v, _ := e.contactLocks.LoadOrStore(contactID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
