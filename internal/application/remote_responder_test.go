package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports/mocks"
)

func TestRemoteResponderPassesPromptAndRecentHistory(t *testing.T) {
	t.Parallel()

	history := make([]domain.Message, 0, 14)
	for i := 0; i < 14; i++ {
		history = append(history, domain.Message{ID: fmt.Sprintf("m-%02d", i), Text: fmt.Sprintf("line %d", i)})
	}
	chat := domain.ChatContext{UserID: "creator-1", Username: "lumen", Reputation: 87, Balance: 42, History: history}

	generator := mocks.NewMockTextGenerator(t)
	generator.EXPECT().Generate(mock.Anything, mock.Anything, "recommend something", mock.Anything).
		RunAndReturn(func(_ context.Context, systemPrompt, _ string, got []domain.Message) (string, error) {
			assert.Contains(t, systemPrompt, "lumen")
			require.Len(t, got, 10)
			assert.Equal(t, "m-04", got[0].ID)
			assert.Equal(t, "m-13", got[9].ID)
			return "  Try the logo sting.  ", nil
		}).Once()

	reply, err := NewRemoteResponder(generator).Respond(context.Background(), "recommend something", chat)
	require.NoError(t, err)
	assert.Equal(t, "Try the logo sting.", reply)
}

func TestRemoteResponderErrors(t *testing.T) {
	t.Parallel()

	t.Run("generator error", func(t *testing.T) {
		t.Parallel()

		generator := mocks.NewMockTextGenerator(t)
		generator.EXPECT().Generate(mock.Anything, mock.Anything, "hi", mock.Anything).Return("", errors.New("rate limited")).Once()

		_, err := NewRemoteResponder(generator).Respond(context.Background(), "hi", domain.ChatContext{})
		assert.ErrorContains(t, err, "generate reply: rate limited")
	})

	t.Run("empty reply", func(t *testing.T) {
		t.Parallel()

		generator := mocks.NewMockTextGenerator(t)
		generator.EXPECT().Generate(mock.Anything, mock.Anything, "hi", mock.Anything).Return("\n", nil).Once()

		_, err := NewRemoteResponder(generator).Respond(context.Background(), "hi", domain.ChatContext{})
		assert.ErrorIs(t, err, domain.ErrEmptyGeneratedReply)
	})

	t.Run("no generator", func(t *testing.T) {
		t.Parallel()

		_, err := NewRemoteResponder(nil).Respond(context.Background(), "hi", domain.ChatContext{})
		assert.ErrorIs(t, err, domain.ErrResponderUnavailable)
	})
}

func TestBuildSystemPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildSystemPrompt(domain.ChatContext{
		UserID:     "creator-1",
		Username:   "lumen",
		Reputation: 87,
		Balance:    1234.5,
		OpenBounties: []domain.Bounty{
			{Title: "Unboxing reel", Reward: 300, Difficulty: domain.DifficultyHard},
			{Title: "Logo sting", Reward: 80, Difficulty: domain.DifficultyEasy},
			{Title: "Podcast clip", Reward: 120, Difficulty: domain.DifficultyMedium},
			{Title: "Launch thread", Reward: 60, Difficulty: domain.DifficultyMedium},
		},
	})

	assert.Contains(t, prompt, "Username: lumen")
	assert.Contains(t, prompt, "Reputation: 87")
	assert.Contains(t, prompt, "Wallet balance: $1,234.50")
	assert.Contains(t, prompt, "Open bounties (4)")
	assert.Contains(t, prompt, "Podcast clip")
	assert.NotContains(t, prompt, "Launch thread")
	assert.Contains(t, prompt, `suggest "Logo sting" first`)

	guest := BuildSystemPrompt(domain.ChatContext{})
	assert.Contains(t, guest, "Username: operator")
	assert.Contains(t, guest, "Not signed in")
	assert.NotContains(t, guest, "Wallet balance")
}
