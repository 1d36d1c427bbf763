package application

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const (
	DefaultFallbackMinLatency = 800 * time.Millisecond
	DefaultFallbackMaxLatency = 2 * time.Second
)

var (
	walletWords     = []string{"balance", "wallet", "money", "earnings", "earned", "funds"}
	bountyWords     = []string{"bounty", "bounties", "task", "tasks", "gig", "gigs", "job", "jobs", "work"}
	reputationWords = []string{"reputation", "rep", "rank", "ranking", "level", "score"}
	helloWords      = []string{"hello", "hi", "hey", "yo", "greetings", "sup"}

	genericReplies = []string{
		"Signal received. The marketplace is steady and your squad is on the board.",
		"Noted. I'll keep watching revenue and ping you if anything spikes.",
		"Copy that. Ask me about bounties or your wallet whenever you're ready.",
		"Logged. Nothing urgent on my radar right now.",
	}
)

// FallbackResponder answers from local templates. It never fails.
type FallbackResponder struct {
	rng        ports.Random
	minLatency time.Duration
	maxLatency time.Duration
}

var _ ports.Responder = (*FallbackResponder)(nil)

func NewFallbackResponder(rng ports.Random, minLatency, maxLatency time.Duration) *FallbackResponder {
	if rng == nil {
		rng = ports.NewSeededRandom(uint64(time.Now().UnixNano()))
	}
	if maxLatency < minLatency {
		maxLatency = minLatency
	}

	return &FallbackResponder{rng: rng, minLatency: minLatency, maxLatency: maxLatency}
}

// Respond waits a jittered latency, cut short by ctx, then replies.
func (r *FallbackResponder) Respond(ctx context.Context, input string, chat domain.ChatContext) (string, error) {
	if delay := jitter(r.rng, r.minLatency, r.maxLatency); delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}

	return r.compose(input, chat), nil
}

func (r *FallbackResponder) compose(input string, chat domain.ChatContext) string {
	words := tokenize(input)
	username := chat.Username
	if username == "" {
		username = GuestUsername
	}

	switch {
	case hasAnyWord(words, walletWords):
		reply := fmt.Sprintf("Your wallet is at %s, %s.", domain.FormatCurrency(chat.Balance), username)
		if easiest, ok := domain.EasiestBounty(chat.OpenBounties); ok {
			reply += fmt.Sprintf(" %q would add %s if you want a quick win.", easiest.Title, domain.FormatCurrency(easiest.Reward))
		}
		return reply
	case hasAnyWord(words, bountyWords):
		easiest, ok := domain.EasiestBounty(chat.OpenBounties)
		if !ok {
			return "The board is quiet right now. I'll ping you when a new bounty lands."
		}
		reply := fmt.Sprintf("There are %d open bounties. Start with %q", len(chat.OpenBounties), easiest.Title)
		if easiest.Brand != "" {
			reply += " for " + easiest.Brand
		}
		return reply + fmt.Sprintf(": %s, rated %s.", domain.FormatCurrency(easiest.Reward), easiest.Difficulty)
	case hasAnyWord(words, reputationWords):
		return fmt.Sprintf("You're at %d reputation, %s. Every approved delivery moves you up the board.", chat.Reputation, username)
	case hasAnyWord(words, helloWords):
		return fmt.Sprintf("Hey %s! Guardian here. Ask me about bounties, your wallet or your reputation.", username)
	default:
		return genericReplies[r.rng.IntN(len(genericReplies))]
	}
}

func jitter(rng ports.Random, minDelay, maxDelay time.Duration) time.Duration {
	if maxDelay <= minDelay {
		return minDelay
	}
	return minDelay + time.Duration(rng.Float64()*float64(maxDelay-minDelay))
}

func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		words[field] = struct{}{}
	}
	return words
}

func hasAnyWord(words map[string]struct{}, candidates []string) bool {
	for _, candidate := range candidates {
		if _, ok := words[candidate]; ok {
			return true
		}
	}
	return false
}
