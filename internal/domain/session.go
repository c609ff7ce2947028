package domain

import (
	"time"
)

// Step identifies where a contact is in the review dialogue.
type Step string

const (
	StepAwaitingProduct Step = "AWAITING_PRODUCT"
	StepAwaitingName    Step = "AWAITING_NAME"
	StepAwaitingReview  Step = "AWAITING_REVIEW"
)

// Valid reports whether s is one of the known dialogue steps.
func (s Step) Valid() bool {
	switch s {
	case StepAwaitingProduct, StepAwaitingName, StepAwaitingReview:
		return true
	}
	return false
}

// Session holds in-progress dialogue state for a single contact.
// Sessions live only in memory; a restart drops all open dialogues.
type Session struct {
	ContactID     string
	Step          Step
	ProductName   string
	UserName      string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// Stale reports whether the session has been inactive longer than timeout.
func (s *Session) Stale(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastUpdatedAt) > timeout
}
