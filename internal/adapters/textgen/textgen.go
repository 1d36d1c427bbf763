package textgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/gigpulse/internal/adapters/textgen/anthropic"
	"github.com/bnema/gigpulse/internal/adapters/textgen/gemini"
	"github.com/bnema/gigpulse/internal/adapters/textgen/openai"
	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const (
	ProviderNone      = "none"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

var Providers = []string{ProviderNone, ProviderOpenAI, ProviderGemini, ProviderAnthropic}

type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}

// New returns the generator for cfg.Provider, or nil for "none".
func New(ctx context.Context, cfg Config) (ports.TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderOpenAI:
		return openai.NewGenerator(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens), nil
	case ProviderGemini:
		generator, err := gemini.NewGenerator(ctx, cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens)
		if err != nil {
			return nil, fmt.Errorf("create gemini generator: %w", err)
		}
		return generator, nil
	case ProviderAnthropic:
		return anthropic.NewGenerator(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, cfg.Provider)
	}
}
