package application

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports/mocks"
)

func TestContextBuilderCollectsEverything(t *testing.T) {
	t.Parallel()

	balances := mocks.NewMockBalanceStore(t)
	profiles := mocks.NewMockProfileStore(t)
	bounties := mocks.NewMockBountyListing(t)
	open := []domain.Bounty{{ID: "b-1", Title: "Logo sting", Reward: 80, Difficulty: domain.DifficultyEasy, Status: domain.BountyStatusOpen}}

	balances.EXPECT().GetBalance(mock.Anything, domain.UserID("creator-1")).Return(420.5, nil).Once()
	profiles.EXPECT().GetProfile(mock.Anything, domain.UserID("creator-1")).Return(domain.Profile{UserID: "creator-1", Username: "lumen", Reputation: 87}, nil).Once()
	bounties.EXPECT().ListOpenBounties(mock.Anything).Return(open, nil).Once()

	chat := NewContextBuilder(balances, profiles, bounties, zerolog.Nop()).Build(context.Background(), "creator-1")

	assert.Equal(t, domain.ChatContext{
		UserID:       "creator-1",
		Username:     "lumen",
		Reputation:   87,
		Balance:      420.5,
		OpenBounties: open,
	}, chat)
}

func TestContextBuilderDegradesFailuresToZeroValues(t *testing.T) {
	t.Parallel()

	balances := mocks.NewMockBalanceStore(t)
	profiles := mocks.NewMockProfileStore(t)
	bounties := mocks.NewMockBountyListing(t)

	balances.EXPECT().GetBalance(mock.Anything, domain.UserID("creator-1")).Return(0, errors.New("ledger offline")).Once()
	profiles.EXPECT().GetProfile(mock.Anything, domain.UserID("creator-1")).Return(domain.Profile{}, domain.ErrUserNotFound).Once()
	bounties.EXPECT().ListOpenBounties(mock.Anything).Return(nil, errors.New("listing offline")).Once()

	chat := NewContextBuilder(balances, profiles, bounties, zerolog.Nop()).Build(context.Background(), "creator-1")

	assert.Equal(t, domain.ChatContext{UserID: "creator-1", Username: GuestUsername}, chat)
}

func TestContextBuilderGuestSkipsUserStores(t *testing.T) {
	t.Parallel()

	balances := mocks.NewMockBalanceStore(t)
	profiles := mocks.NewMockProfileStore(t)
	bounties := mocks.NewMockBountyListing(t)
	bounties.EXPECT().ListOpenBounties(mock.Anything).Return(nil, nil).Once()

	chat := NewContextBuilder(balances, profiles, bounties, zerolog.Nop()).Build(context.Background(), "")

	assert.True(t, chat.Guest())
	assert.Equal(t, GuestUsername, chat.Username)
}

func TestContextBuilderToleratesMissingStores(t *testing.T) {
	t.Parallel()

	chat := NewContextBuilder(nil, nil, nil, zerolog.Nop()).Build(context.Background(), "creator-1")
	assert.Equal(t, domain.ChatContext{UserID: "creator-1", Username: GuestUsername}, chat)
}
