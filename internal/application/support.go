package application

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/metrics"
)

const (
	ChannelBilling     = "billing"
	ChannelEngineering = "engineering"
)

type SupportRoute struct {
	Intent   domain.Intent `json:"intent"`
	Reply    string        `json:"reply,omitempty"`
	Escalate bool          `json:"escalate"`
	Channel  string        `json:"channel,omitempty"`
}

// SupportDesk answers what it can and hands money and bug reports to people.
type SupportDesk struct {
	logger zerolog.Logger
}

func NewSupportDesk(logger zerolog.Logger) *SupportDesk {
	return &SupportDesk{logger: logger.With().Str("component", "support").Logger()}
}

func (d *SupportDesk) Route(text string) SupportRoute {
	intent := domain.Classify(text)
	metrics.SupportRoutes.WithLabelValues(string(intent)).Inc()

	if reply, ok := domain.AutoResponseFor(intent); ok {
		return SupportRoute{Intent: intent, Reply: reply}
	}

	route := SupportRoute{Intent: intent, Escalate: true, Channel: ChannelEngineering}
	if intent == domain.IntentEscalateMoney {
		route.Channel = ChannelBilling
	}
	d.logger.Info().
		Str("intent", string(intent)).
		Str("channel", route.Channel).
		Int("length", len(strings.TrimSpace(text))).
		Msg("support request escalated")

	return route
}
