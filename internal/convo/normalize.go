// Package convo implements the WhatsApp review dialogue engine: per-contact
// sessions, a three-step state machine, and the text heuristics that turn
// free-form messages into structured review fields.
package convo

import (
	"regexp"
	"strings"
)

// Command is a global instruction recognized at any dialogue step.
type Command string

const (
	CommandNone   Command = ""
	CommandStart  Command = "START"
	CommandReset  Command = "RESET"
	CommandCancel Command = "CANCEL"
	CommandHelp   Command = "HELP"
	CommandStatus Command = "STATUS"
)

// commandPhrases maps each command to the exact phrases that trigger it.
// Matching is exact on the full lowercased message, never substring, and the
// commands are checked in this order.
var commandPhrases = []struct {
	cmd     Command
	phrases []string
}{
	{CommandStart, []string{"hi", "hello", "start"}},
	{CommandReset, []string{"reset", "restart"}},
	{CommandCancel, []string{"cancel", "stop"}},
	{CommandHelp, []string{"help", "?", "menu"}},
	{CommandStatus, []string{"status", "where am i", "progress"}},
}

var (
	// Alternation order matters: longer phrases must come before their
	// prefixes ("i'm" before "im", "going to" before "gonna" is irrelevant
	// but "my name is" before "name is" is not).
	fillerPattern    = regexp.MustCompile(`(?i)i'm|im|i am|gonna|going to|want to|wanna|review|about|of|for`)
	introPattern     = regexp.MustCompile(`(?i)my name is|i am|i'm|im|this is|you can call me|call me|name is`)
	nonLetterPattern = regexp.MustCompile(`[^a-zA-Z\s]`)
	multiSpace       = regexp.MustCompile(`\s+`)
	sentencePunct    = regexp.MustCompile(`[.!?]`)
	ratingPattern    = regexp.MustCompile(`\b\d(\.\d)?/?10\b`)
	simpleTextOnly   = regexp.MustCompile(`^[a-zA-Z\s.]+$`)
	correctionWords  = regexp.MustCompile(`(?i)actually|wrong product|change product|not this`)
)

// Normalize trims surrounding whitespace. Case is preserved; lowercasing
// happens only for command matching.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// DetectCommand matches the full lowercased message against the fixed
// command phrase sets. It returns CommandNone when nothing matches.
func DetectCommand(lower string) Command {
	for _, entry := range commandPhrases {
		for _, phrase := range entry.phrases {
			if lower == phrase {
				return entry.cmd
			}
		}
	}
	return CommandNone
}

// LooksLikeReview reports whether text reads like review prose rather than a
// short field value: more than 8 words, sentence punctuation, or a rating
// such as "8/10".
func LooksLikeReview(text string) bool {
	if len(strings.Fields(text)) > 8 {
		return true
	}
	return sentencePunct.MatchString(text) || ratingPattern.MatchString(text)
}

// ExtractProductName pulls a product reference out of a sentence like
// "I'm gonna review Samsung TV". The steps run in a fixed order: strip
// filler phrases, collapse whitespace, fall back to the original when
// stripping ate everything, then keep the trailing tokens of a long answer.
// It never returns an empty string for non-empty input.
func ExtractProductName(text string) string {
	original := strings.TrimSpace(text)

	msg := stripFiller(original)
	msg = collapseSpaces(msg)
	if msg == "" {
		return original
	}
	return keepLastTokens(msg, 4, 3)
}

// ExtractPersonName pulls a name out of a self-introduction like "my name is
// Aditi". Steps in order: strip introduction phrases, drop non-letter runes,
// fall back to the original when fewer than 2 characters survive, then keep
// the leading tokens of a long answer (names are stated early).
func ExtractPersonName(text string) string {
	original := strings.TrimSpace(text)

	cleaned := stripIntro(original)
	cleaned = strings.TrimSpace(nonLetterPattern.ReplaceAllString(cleaned, ""))
	if len(cleaned) < 2 {
		return original
	}
	return keepFirstTokens(cleaned, 3, 2)
}

func stripFiller(s string) string {
	return fillerPattern.ReplaceAllString(s, " ")
}

func stripIntro(s string) string {
	return strings.TrimSpace(introPattern.ReplaceAllString(s, ""))
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// keepLastTokens returns the last keep tokens when s has more than max.
func keepLastTokens(s string, max, keep int) string {
	parts := strings.Fields(s)
	if len(parts) > max {
		return strings.Join(parts[len(parts)-keep:], " ")
	}
	return s
}

// keepFirstTokens returns the first keep tokens when s has more than max.
func keepFirstTokens(s string, max, keep int) string {
	parts := strings.Fields(s)
	if len(parts) > max {
		return strings.Join(parts[:keep], " ")
	}
	return s
}

// isSimpleText reports whether text contains only letters, spaces and
// periods, the shape of a plain product name typed on its own.
func isSimpleText(text string) bool {
	return simpleTextOnly.MatchString(text)
}

// wantsDifferentProduct reports whether a mid-review message signals that
// the wrong product was recorded ("actually", "wrong product", ...).
func wantsDifferentProduct(text string) bool {
	return correctionWords.MatchString(text)
}
