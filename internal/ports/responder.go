package ports

import (
	"context"

	"github.com/bnema/gigpulse/internal/domain"
)

type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userMessage string, history []domain.Message) (string, error)
}

type Responder interface {
	Respond(ctx context.Context, input string, chat domain.ChatContext) (string, error)
}
