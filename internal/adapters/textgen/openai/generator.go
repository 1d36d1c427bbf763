package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const DefaultModel = goopenai.GPT4oMini

// Generator talks to any OpenAI-compatible chat completions endpoint.
type Generator struct {
	client    *goopenai.Client
	model     string
	maxTokens int
}

var _ ports.TextGenerator = (*Generator)(nil)

func NewGenerator(apiKey, baseURL, model string, maxTokens int) *Generator {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}

	return &Generator{
		client:    goopenai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (g *Generator) Generate(ctx context.Context, systemPrompt, userMessage string, history []domain.Message) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages:  toChatMessages(systemPrompt, userMessage, history),
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("create chat completion: no choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func toChatMessages(systemPrompt, userMessage string, history []domain.Message) []goopenai.ChatCompletionMessage {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(history)+2)
	if systemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	for _, message := range history {
		switch message.Sender {
		case domain.SenderUser:
			messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: message.Text})
		case domain.SenderBroker:
			messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleAssistant, Content: message.Text})
		}
	}

	return append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: userMessage})
}
