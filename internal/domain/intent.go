package domain

import "strings"

type Intent string

const (
	IntentGreeting      Intent = "GREETING"
	IntentTechSupport   Intent = "TECH_SUPPORT"
	IntentEscalateMoney Intent = "ESCALATE_MONEY"
	IntentEscalateBug   Intent = "ESCALATE_BUG"
	IntentUnknown       Intent = "UNKNOWN"
)

// Keyword sets are matched as case-insensitive substrings. Money is checked
// first so billing questions are never auto-answered.
var (
	moneyKeywords = []string{
		"payment", "pay out", "payout", "billing", "invoice", "refund", "charge",
		"withdraw", "escrow", "contract", "terms", "urgent", "$", "€", "£",
	}
	greetingKeywords = []string{
		"hello", "hey", "good morning", "how do", "how to", "how does",
		"getting started", "what is", "help",
	}
	bugKeywords = []string{
		"error", "bug", "crash", "broken", "not working", "fail", "glitch", "stuck",
	}
)

const (
	greetingAutoResponse = "Hey! Browse open bounties from the marketplace tab, claim one, and submit your work before the countdown ends. Payouts land in your wallet once the brand approves."
	unknownAutoResponse  = "Thanks for reaching out. Try rephrasing, or ask about bounties, payouts or your squad and I'll point you in the right direction."
)

func Classify(text string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return IntentUnknown
	}

	switch {
	case containsAny(normalized, moneyKeywords):
		return IntentEscalateMoney
	case containsAny(normalized, greetingKeywords):
		return IntentGreeting
	case containsAny(normalized, bugKeywords):
		return IntentEscalateBug
	default:
		return IntentUnknown
	}
}

// AutoResponseFor returns the canned reply for intents that can be answered
// without a human. ok is false when the caller must hand off.
func AutoResponseFor(intent Intent) (reply string, ok bool) {
	switch intent {
	case IntentGreeting:
		return greetingAutoResponse, true
	case IntentUnknown:
		return unknownAutoResponse, true
	default:
		return "", false
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
