package ports

import (
	"context"

	"github.com/bnema/gigpulse/internal/domain"
)

// Engine is the source of engagement state. The local simulator advances it
// from its own timers; the realtime engine receives it from a channel.
type Engine interface {
	Snapshot() domain.EngineSnapshot
	Subscribe(fn func(domain.EngineSnapshot)) (unsubscribe func())
	BuyAsset(ctx context.Context, assetID string) error
	Run(ctx context.Context) error
}
