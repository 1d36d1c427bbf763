package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const DefaultModel = "gemini-2.0-flash"

type Generator struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

var _ ports.TextGenerator = (*Generator)(nil)

func NewGenerator(ctx context.Context, apiKey, baseURL, model string, maxTokens int) (*Generator, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientConfig.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}

	return &Generator{client: client, model: model, maxTokens: int32(maxTokens)}, nil
}

func (g *Generator) Generate(ctx context.Context, systemPrompt, userMessage string, history []domain.Message) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, toContents(userMessage, history), g.config(systemPrompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

func (g *Generator) config(systemPrompt string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	if g.maxTokens > 0 {
		config.MaxOutputTokens = g.maxTokens
	}
	return config
}

func toContents(userMessage string, history []domain.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, message := range history {
		switch message.Sender {
		case domain.SenderUser:
			contents = append(contents, genai.NewContentFromText(message.Text, genai.RoleUser))
		case domain.SenderBroker:
			contents = append(contents, genai.NewContentFromText(message.Text, genai.RoleModel))
		}
	}

	return append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))
}
