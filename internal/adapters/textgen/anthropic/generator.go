package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const (
	DefaultModel     = "claude-3-5-haiku-latest"
	DefaultMaxTokens = 512
)

type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

var _ ports.TextGenerator = (*Generator)(nil)

func NewGenerator(apiKey, baseURL, model string, maxTokens int) *Generator {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Generator{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

func (g *Generator) Generate(ctx context.Context, systemPrompt, userMessage string, history []domain.Message) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages:  toMessageParams(userMessage, history),
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	message, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create message: %w", err)
	}

	var reply strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}

	return strings.TrimSpace(reply.String()), nil
}

// toMessageParams keeps user and broker turns only; the API takes the system
// prompt separately.
func toMessageParams(userMessage string, history []domain.Message) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, message := range history {
		switch message.Sender {
		case domain.SenderUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(message.Text)))
		case domain.SenderBroker:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(message.Text)))
		}
	}

	return append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)))
}
