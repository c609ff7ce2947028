package convo

import (
	"fmt"

	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/domain"
)

// Outbound copy uses WhatsApp formatting (*bold*). Every rejected input gets
// a clarifying re-prompt, never an error.

const (
	replyEmptyInput = "I didn't catch that 🤔 Could you please type your message again?"

	replyHelp = "🆘 *Help menu*\n" +
		"- Type *Hi* to start a new review\n" +
		"- Type *reset* to restart the current review\n" +
		"- Type *cancel* to cancel this review\n" +
		"- Type *status* to see where you are in the flow"

	replyCancelled = "✅ Your current review has been cancelled.\nYou can type *Hi* anytime to start a new one."

	replyGreeting = "👋 Hey! I'd love to hear your thoughts.\n🛍️ Which *product* would you like to review today?"

	replyUnclearProduct = "Could you please provide a slightly clearer product name? For example: *Samsung TV* or *iPhone 15 Pro*."

	replyNameLooksLikeReview = "That looks like a detailed review 😄\nBut first, could you please tell me your *name* (e.g., *Aditi*)?"

	replyInvalidName = "That doesn't look like a valid name. Could you try a simpler version? 😊"

	replyReviewTooShort = "Thanks! Could you add a bit more detail to your review? A short sentence is enough. 😊"

	replyReviewTooLong = "Wow, that's a very detailed review! 😅\nCould you please shorten it a little so it's under 1000 characters?"

	replyChangeProduct = "No problem! Let's update the product.\n🛍️ Which *product* would you like to review instead?"

	replyConfused = "⚠️ I got a bit confused about where we were.\nLet's start fresh. Please type *Hi* to begin a new review. 😊"
)

func replyProductRecorded(productName string) string {
	return fmt.Sprintf("🔍 Got it! You're reviewing *%s*.\n👤 What's your *name*?", productName)
}

func replySimpleProductRecorded(productName string) string {
	return fmt.Sprintf("👍 Great! You'd like to review *%s*.\n👤 What's your *name*?", productName)
}

func replyNameRecorded(userName, productName string) string {
	return fmt.Sprintf("Nice to meet you, *%s*! 😊\nNow please share your honest review of *%s*.", userName, productName)
}

func replyReviewRecorded(userName, productName, review string) string {
	return fmt.Sprintf("🎉 Thank you *%s*!\nYour review for *%s* has been recorded. 🙌\n\n📝 *Your review:*\n\"%s\"\n\nIf you'd like to submit another review, just type *Hi* anytime.",
		userName, productName, review)
}

func replyStatus(sess domain.Session) string {
	product := "_not provided_"
	if sess.ProductName != "" {
		product = sess.ProductName
	}
	name := "_not provided_"
	if sess.UserName != "" {
		name = sess.UserName
	}

	var where string
	switch sess.Step {
	case domain.StepAwaitingProduct:
		where = "I'm waiting for the *product name*."
	case domain.StepAwaitingName:
		where = "I'm waiting for *your name*."
	case domain.StepAwaitingReview:
		where = "I'm waiting for *your review*."
	default:
		where = "I'm a bit confused about the current step."
	}

	return fmt.Sprintf("ℹ️ *Current status*\n• Product: %s\n• Name: %s\n• Review: _not provided_\n\n%s",
		product, name, where)
}
