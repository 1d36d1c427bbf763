package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gigpulse/internal/domain"
)

func TestGeneratorSendsConversationAndReturnsReply(t *testing.T) {
	t.Parallel()

	var got goopenai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Try the logo sting. "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	generator := NewGenerator("test-key", server.URL+"/v1", "gpt-test", 256)
	reply, err := generator.Generate(context.Background(), "be brief", "what should I do?", []domain.Message{
		{Sender: domain.SenderSystem, Text: "Guardian core online."},
		{Sender: domain.SenderBroker, Text: "Hi there"},
		{Sender: domain.SenderUser, Text: "hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Try the logo sting.", reply)
	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, goopenai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, goopenai.ChatMessageRoleAssistant, got.Messages[1].Role)
	assert.Equal(t, goopenai.ChatMessageRoleUser, got.Messages[2].Role)
	assert.Equal(t, "what should I do?", got.Messages[3].Content)
}

func TestGeneratorReturnsErrorOnUpstreamFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	_, err := NewGenerator("test-key", server.URL+"/v1", "", 0).Generate(context.Background(), "", "hi", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "create chat completion")
}

func TestGeneratorRejectsEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	_, err := NewGenerator("test-key", server.URL+"/v1", "", 0).Generate(context.Background(), "", "hi", nil)
	assert.ErrorContains(t, err, "no choices")
}
