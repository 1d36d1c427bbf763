package ports

import (
	"context"

	"github.com/bnema/gigpulse/internal/domain"
)

type BalanceStore interface {
	GetBalance(ctx context.Context, userID domain.UserID) (float64, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID domain.UserID) (domain.Profile, error)
}

type BountyListing interface {
	ListOpenBounties(ctx context.Context) ([]domain.Bounty, error)
}
