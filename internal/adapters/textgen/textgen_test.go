package textgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gigpulse/internal/adapters/textgen/anthropic"
	"github.com/bnema/gigpulse/internal/adapters/textgen/gemini"
	"github.com/bnema/gigpulse/internal/adapters/textgen/openai"
	"github.com/bnema/gigpulse/internal/domain"
)

func TestNewSelectsProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		provider string
		check    func(t *testing.T, got any)
	}{
		{provider: "", check: func(t *testing.T, got any) { assert.Nil(t, got) }},
		{provider: ProviderNone, check: func(t *testing.T, got any) { assert.Nil(t, got) }},
		{provider: "OpenAI", check: func(t *testing.T, got any) { assert.IsType(t, &openai.Generator{}, got) }},
		{provider: ProviderGemini, check: func(t *testing.T, got any) { assert.IsType(t, &gemini.Generator{}, got) }},
		{provider: ProviderAnthropic, check: func(t *testing.T, got any) { assert.IsType(t, &anthropic.Generator{}, got) }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("provider="+tc.provider, func(t *testing.T) {
			t.Parallel()

			generator, err := New(context.Background(), Config{Provider: tc.provider, APIKey: "test-key"})
			require.NoError(t, err)
			if generator == nil {
				tc.check(t, nil)
				return
			}
			tc.check(t, generator)
		})
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{Provider: "mistral"})
	require.ErrorIs(t, err, domain.ErrUnknownProvider)
	assert.ErrorContains(t, err, `"mistral"`)
}
