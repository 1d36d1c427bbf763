package application

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/gigpulse/internal/domain"
)

func TestSupportDeskRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		intent   domain.Intent
		escalate bool
		channel  string
	}{
		{name: "greeting answered", text: "Hello! how do I get started?", intent: domain.IntentGreeting},
		{name: "billing escalated", text: "hello, I have a question about billing", intent: domain.IntentEscalateMoney, escalate: true, channel: ChannelBilling},
		{name: "bug escalated", text: "upload keeps failing with an error", intent: domain.IntentEscalateBug, escalate: true, channel: ChannelEngineering},
		{name: "unknown answered", text: "   ", intent: domain.IntentUnknown},
	}

	desk := NewSupportDesk(zerolog.Nop())
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			route := desk.Route(tc.text)
			assert.Equal(t, tc.intent, route.Intent)
			assert.Equal(t, tc.escalate, route.Escalate)
			assert.Equal(t, tc.channel, route.Channel)
			if tc.escalate {
				assert.Empty(t, route.Reply)
			} else {
				assert.NotEmpty(t, route.Reply)
			}
		})
	}
}
