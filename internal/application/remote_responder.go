package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const (
	historyWindow     = 10
	promptBountyLimit = 3
)

// RemoteResponder asks a text generator for the reply.
type RemoteResponder struct {
	generator ports.TextGenerator
}

var _ ports.Responder = (*RemoteResponder)(nil)

func NewRemoteResponder(generator ports.TextGenerator) *RemoteResponder {
	return &RemoteResponder{generator: generator}
}

func (r *RemoteResponder) Respond(ctx context.Context, input string, chat domain.ChatContext) (string, error) {
	if r == nil || r.generator == nil {
		return "", domain.ErrResponderUnavailable
	}

	history := chat.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	reply, err := r.generator.Generate(ctx, BuildSystemPrompt(chat), input, domain.CloneMessages(history))
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", domain.ErrEmptyGeneratedReply
	}

	return reply, nil
}

func BuildSystemPrompt(chat domain.ChatContext) string {
	var sb strings.Builder

	sb.WriteString("You are Guardian, the engagement assistant of a gig bounty marketplace for creators.\n")
	sb.WriteString("Answer in at most three short sentences. Be direct and upbeat. Never promise payouts.\n\n")

	sb.WriteString("## Operator\n")
	username := chat.Username
	if username == "" {
		username = GuestUsername
	}
	sb.WriteString(fmt.Sprintf("- Username: %s\n", username))
	if chat.Guest() {
		sb.WriteString("- Not signed in\n")
	} else {
		sb.WriteString(fmt.Sprintf("- Reputation: %d\n", chat.Reputation))
		sb.WriteString(fmt.Sprintf("- Wallet balance: %s\n", domain.FormatCurrency(chat.Balance)))
	}

	sb.WriteString(fmt.Sprintf("\n## Open bounties (%d)\n", len(chat.OpenBounties)))
	for i, bounty := range chat.OpenBounties {
		if i == promptBountyLimit {
			break
		}
		sb.WriteString(fmt.Sprintf("- %s: %s, %s\n", bounty.Title, domain.FormatCurrency(bounty.Reward), bounty.Difficulty))
	}
	if easiest, ok := domain.EasiestBounty(chat.OpenBounties); ok {
		sb.WriteString(fmt.Sprintf("\nWhen asked for a recommendation, suggest %q first.\n", easiest.Title))
	}

	return sb.String()
}
