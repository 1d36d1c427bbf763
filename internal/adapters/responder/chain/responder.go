package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/metrics"
	"github.com/bnema/gigpulse/internal/ports"
)

// Responder asks primary once and falls through to fallback on any failure
// except the caller giving up.
type Responder struct {
	primary        ports.Responder
	fallback       ports.Responder
	primaryTimeout time.Duration
	logger         zerolog.Logger
}

var _ ports.Responder = (*Responder)(nil)

var errNilFallbackResponder = errors.New("fallback responder is nil")

func NewResponder(primary ports.Responder, fallback ports.Responder, primaryTimeout time.Duration, logger zerolog.Logger) *Responder {
	responder, err := NewResponderChecked(primary, fallback, primaryTimeout, logger)
	if err != nil {
		panic(err)
	}

	return responder
}

// NewResponderChecked accepts a nil primary; every call then goes to fallback.
func NewResponderChecked(primary ports.Responder, fallback ports.Responder, primaryTimeout time.Duration, logger zerolog.Logger) (*Responder, error) {
	if fallback == nil {
		return nil, errNilFallbackResponder
	}

	return &Responder{
		primary:        primary,
		fallback:       fallback,
		primaryTimeout: primaryTimeout,
		logger:         logger.With().Str("component", "responder_chain").Logger(),
	}, nil
}

func (r *Responder) Respond(ctx context.Context, input string, chat domain.ChatContext) (string, error) {
	if r.primary == nil {
		return r.fallback.Respond(ctx, input, chat)
	}

	reply, err := r.respondPrimary(ctx, input, chat)
	if err == nil {
		return reply, nil
	}
	if shouldSkipFallback(ctx) {
		return "", err
	}

	metrics.ResponderFallbacks.Inc()
	r.logger.Warn().Err(err).Msg("primary responder failed, using fallback")

	fallbackReply, fallbackErr := r.fallback.Respond(ctx, input, chat)
	if fallbackErr == nil {
		return fallbackReply, nil
	}

	return "", fmt.Errorf("primary responder failed: %w; fallback responder failed: %w", err, fallbackErr)
}

func (r *Responder) respondPrimary(ctx context.Context, input string, chat domain.ChatContext) (string, error) {
	if r.primaryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.primaryTimeout)
		defer cancel()
	}

	return r.primary.Respond(ctx, input, chat)
}

// A primary timeout still falls back; only the caller's own cancellation stops the chain.
func shouldSkipFallback(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}
