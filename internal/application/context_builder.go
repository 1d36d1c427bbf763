package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const GuestUsername = "operator"

// ChatContextSource produces what a responder should know about userID.
type ChatContextSource interface {
	Build(ctx context.Context, userID domain.UserID) domain.ChatContext
}

// ContextBuilder gathers chat context from the marketplace stores. A failing
// store never fails the build; its field keeps the zero value.
type ContextBuilder struct {
	balances ports.BalanceStore
	profiles ports.ProfileStore
	bounties ports.BountyListing
	logger   zerolog.Logger
}

var _ ChatContextSource = (*ContextBuilder)(nil)

func NewContextBuilder(balances ports.BalanceStore, profiles ports.ProfileStore, bounties ports.BountyListing, logger zerolog.Logger) *ContextBuilder {
	return &ContextBuilder{
		balances: balances,
		profiles: profiles,
		bounties: bounties,
		logger:   logger.With().Str("component", "context_builder").Logger(),
	}
}

func (b *ContextBuilder) Build(ctx context.Context, userID domain.UserID) domain.ChatContext {
	chat := domain.ChatContext{UserID: userID, Username: GuestUsername}

	if userID != "" && b.balances != nil {
		balance, err := b.balances.GetBalance(ctx, userID)
		if err != nil {
			b.logger.Warn().Err(err).Str("user_id", string(userID)).Msg("balance unavailable")
		} else {
			chat.Balance = balance
		}
	}

	if userID != "" && b.profiles != nil {
		profile, err := b.profiles.GetProfile(ctx, userID)
		if err != nil {
			b.logger.Warn().Err(err).Str("user_id", string(userID)).Msg("profile unavailable")
		} else {
			if profile.Username != "" {
				chat.Username = profile.Username
			}
			chat.Reputation = profile.Reputation
		}
	}

	if b.bounties != nil {
		bounties, err := b.bounties.ListOpenBounties(ctx)
		if err != nil {
			b.logger.Warn().Err(err).Msg("open bounties unavailable")
		} else {
			chat.OpenBounties = bounties
		}
	}

	return chat
}
