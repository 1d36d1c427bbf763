package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/metrics"
	"github.com/bnema/gigpulse/internal/ports"
	"github.com/bnema/gigpulse/internal/pubsub"
)

// Engine mirrors engagement state pushed by a remote simulator. Purchases are
// sent as commands and shown locally before the next snapshot confirms them.
type Engine struct {
	channel  Channel
	channels Channels
	clock    ports.Clock
	logger   zerolog.Logger
	topic    *pubsub.Topic[domain.EngineSnapshot]

	// publishMu orders deliveries; mu guards the mirrored state.
	publishMu sync.Mutex
	mu        sync.Mutex
	snap      domain.EngineSnapshot
	pending   domain.OwnedAssetSet
}

var _ ports.Engine = (*Engine)(nil)

func NewEngine(channel Channel, channels Channels, clock ports.Clock, logger zerolog.Logger) *Engine {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Engine{
		channel:  channel,
		channels: channels.withDefaults(),
		clock:    clock,
		logger:   logger.With().Str("component", "realtime_engine").Logger(),
		topic:    pubsub.NewTopic[domain.EngineSnapshot](),
	}
}

func (e *Engine) Snapshot() domain.EngineSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.Clone()
}

func (e *Engine) Subscribe(fn func(domain.EngineSnapshot)) func() {
	return e.topic.Subscribe(fn)
}

func (e *Engine) BuyAsset(ctx context.Context, assetID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return domain.ErrEmptyAssetID
	}

	payload, err := json.Marshal(command{
		Type:      commandBuy,
		RequestID: uuid.NewString(),
		AssetID:   assetID,
		SentAt:    e.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("encode purchase command: %w", err)
	}
	if err := e.channel.Publish(ctx, e.channels.Commands, payload); err != nil {
		return fmt.Errorf("send purchase command: %w", err)
	}
	metrics.RealtimeEvents.WithLabelValues("out").Inc()

	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	e.topic.Publish(e.markPending(assetID))
	return nil
}

func (e *Engine) markPending(assetID string) domain.EngineSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending.Add(assetID)
	e.snap.OwnedAssets = mergeOwned(e.snap.OwnedAssets, e.pending)
	return e.snap.Clone()
}

// Run applies snapshot events until ctx is done or the channel closes.
func (e *Engine) Run(ctx context.Context) error {
	events, closeSub, err := e.channel.Subscribe(ctx, e.channels.Snapshots)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSub(); err != nil {
			e.logger.Warn().Err(err).Msg("close snapshot subscription")
		}
	}()

	e.logger.Info().Str("channel", e.channels.Snapshots).Msg("listening for snapshots")
	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-events:
			if !ok {
				return nil
			}
			e.apply(payload)
		}
	}
}

func (e *Engine) apply(payload []byte) {
	metrics.RealtimeEvents.WithLabelValues("in").Inc()
	remote, err := decodeSnapshot(payload)
	if err != nil {
		e.logger.Warn().Err(err).Msg("dropping realtime event")
		return
	}

	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	e.topic.Publish(e.mirror(remote))
}

func (e *Engine) mirror(remote domain.EngineSnapshot) domain.EngineSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	remoteOwned := domain.NewOwnedAssetSet(remote.OwnedAssets...)
	stillPending := domain.NewOwnedAssetSet()
	for _, id := range e.pending.IDs() {
		if !remoteOwned.Has(id) {
			stillPending.Add(id)
		}
	}
	e.pending = stillPending
	remote.OwnedAssets = mergeOwned(remoteOwned.IDs(), e.pending)
	e.snap = remote
	return e.snap.Clone()
}

func mergeOwned(owned []string, pending domain.OwnedAssetSet) []string {
	set := domain.NewOwnedAssetSet(owned...)
	for _, id := range pending.IDs() {
		set.Add(id)
	}
	return set.IDs()
}

// Publisher mirrors a local engine onto the snapshot channel and executes
// purchase commands against it.
type Publisher struct {
	engine   ports.Engine
	channel  Channel
	channels Channels
	clock    ports.Clock
	logger   zerolog.Logger
}

func NewPublisher(engine ports.Engine, channel Channel, channels Channels, clock ports.Clock, logger zerolog.Logger) *Publisher {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Publisher{
		engine:   engine,
		channel:  channel,
		channels: channels.withDefaults(),
		clock:    clock,
		logger:   logger.With().Str("component", "realtime_publisher").Logger(),
	}
}

func (p *Publisher) Run(ctx context.Context) error {
	commands, closeSub, err := p.channel.Subscribe(ctx, p.channels.Commands)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSub(); err != nil {
			p.logger.Warn().Err(err).Msg("close command subscription")
		}
	}()

	var latestMu sync.Mutex
	latest := make(chan domain.EngineSnapshot, 1)
	unsubscribe := p.engine.Subscribe(func(snap domain.EngineSnapshot) {
		latestMu.Lock()
		defer latestMu.Unlock()
		select {
		case <-latest:
		default:
		}
		latest <- snap
	})
	defer unsubscribe()

	p.publish(ctx, p.engine.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-latest:
			p.publish(ctx, snap)
		case payload, ok := <-commands:
			if !ok {
				return nil
			}
			p.execute(ctx, payload)
		}
	}
}

func (p *Publisher) publish(ctx context.Context, snap domain.EngineSnapshot) {
	payload, err := json.Marshal(snapshotEvent{Type: eventSnapshot, Snapshot: snap, SentAt: p.clock.Now()})
	if err != nil {
		p.logger.Warn().Err(err).Msg("encode snapshot event")
		return
	}
	if err := p.channel.Publish(ctx, p.channels.Snapshots, payload); err != nil {
		p.logger.Warn().Err(err).Msg("publish snapshot")
		return
	}
	metrics.RealtimeEvents.WithLabelValues("out").Inc()
}

func (p *Publisher) execute(ctx context.Context, payload []byte) {
	metrics.RealtimeEvents.WithLabelValues("in").Inc()
	cmd, err := decodeCommand(payload)
	if err != nil {
		p.logger.Warn().Err(err).Msg("dropping command")
		return
	}

	buyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.engine.BuyAsset(buyCtx, cmd.AssetID); err != nil {
		p.logger.Warn().Err(err).Str("request_id", cmd.RequestID).Msg("purchase command failed")
		return
	}
	p.logger.Info().Str("request_id", cmd.RequestID).Str("asset_id", cmd.AssetID).Msg("purchase command applied")
}
