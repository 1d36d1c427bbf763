package application

import (
	"context"
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

const (
	CountdownInterval = time.Second
	SquadInterval     = 5 * time.Second
	RevenueInterval   = 8 * time.Second

	DefaultCountdownStart      = 3600
	DefaultSquadToggleChance   = 0.1
	DefaultRevenueChance       = 0.3
	assetRoyaltyPurchaseAmount = 25
)

var transactionAmounts = map[domain.LogEntryKind]float64{
	domain.LogEntrySubscription: 299,
	domain.LogEntryBountyFee:    45,
	domain.LogEntryAssetRoyalty: 25,
}

var (
	subscriberCompanies = []string{"Northwind Studio", "Helix Media", "Brightline Apparel", "Orbit Energy", "Pinecrest Labs"}
	royaltyCreators     = []string{"@lumen.cuts", "@frame.by.frame", "@sonic.loop", "@grainfilter"}
	squadTasks          = []string{
		"Editing launch teaser",
		"Color grading vlog",
		"Writing thread hooks",
		"Cutting shorts pack",
		"Mixing podcast audio",
	}
)

type SimulatorConfig struct {
	CountdownStart     int
	SquadToggleChance  float64
	RevenueChance      float64
	InitialOwnedAssets []string
}

func (c SimulatorConfig) withDefaults() SimulatorConfig {
	if c.CountdownStart <= 0 {
		c.CountdownStart = DefaultCountdownStart
	}
	if c.SquadToggleChance <= 0 {
		c.SquadToggleChance = DefaultSquadToggleChance
	}
	if c.RevenueChance <= 0 {
		c.RevenueChance = DefaultRevenueChance
	}
	return c
}

// Simulator owns the local engagement economy. Advance is the only way
// timed state moves; Run feeds it from a wall-clock ticker.
//
// publishMu is held from mutation through delivery so subscribers see
// snapshots in mutation order. Callbacks must not mutate the simulator.
type Simulator struct {
	publishMu sync.Mutex
	mu        sync.Mutex
	config    SimulatorConfig
	rng       ports.Random
	clock     ports.Clock
	logger    zerolog.Logger
	topic     *pubsub.Topic[domain.EngineSnapshot]

	countdown int
	squad     []domain.SquadMember
	ledger    domain.RevenueLedger
	owned     domain.OwnedAssetSet

	countdownElapsed time.Duration
	squadElapsed     time.Duration
	revenueElapsed   time.Duration
}

var _ ports.Engine = (*Simulator)(nil)

func NewSimulator(config SimulatorConfig, rng ports.Random, clock ports.Clock, logger zerolog.Logger) *Simulator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if rng == nil {
		rng = ports.NewSeededRandom(uint64(time.Now().UnixNano()))
	}
	config = config.withDefaults()
	now := clock.Now()

	return &Simulator{
		config:    config,
		rng:       rng,
		clock:     clock,
		logger:    logger.With().Str("component", "simulator").Logger(),
		topic:     pubsub.NewTopic[domain.EngineSnapshot](),
		countdown: config.CountdownStart,
		squad:     seedSquad(now),
		ledger:    seedLedger(now),
		owned:     domain.NewOwnedAssetSet(config.InitialOwnedAssets...),
	}
}

func seedSquad(now time.Time) []domain.SquadMember {
	squad := []domain.SquadMember{
		{ID: "sq-nova", Name: "Nova", AvatarRef: "avatars/nova.png"},
		{ID: "sq-kai", Name: "Kai", AvatarRef: "avatars/kai.png"},
		{ID: "sq-mira", Name: "Mira", AvatarRef: "avatars/mira.png"},
		{ID: "sq-jax", Name: "Jax", AvatarRef: "avatars/jax.png"},
		{ID: "sq-lena", Name: "Lena", AvatarRef: "avatars/lena.png"},
	}
	squad[0].SetStatus(domain.SquadStatusActive, squadTasks[0], now.Add(-2*time.Minute))
	squad[1].SetStatus(domain.SquadStatusIdle, "", now.Add(-14*time.Minute))
	squad[2].SetStatus(domain.SquadStatusPublishing, squadTasks[3], now.Add(-5*time.Minute))
	squad[3].SetStatus(domain.SquadStatusActive, squadTasks[2], now.Add(-9*time.Minute))
	squad[4].SetStatus(domain.SquadStatusOffline, "", now.Add(-3*time.Hour))
	return squad
}

func seedLedger(now time.Time) domain.RevenueLedger {
	ledger := domain.RevenueLedger{
		RecurringRevenue:  12450,
		TransactionFees:   3280,
		MarketplaceVolume: 8920,
		Velocity:          42,
	}
	seed := []domain.LogEntry{
		newLogEntry(domain.LogEntryAssetRoyalty, "@lumen.cuts", 25, now.Add(-41*time.Minute)),
		newLogEntry(domain.LogEntryBountyFee, "Helix Media", 45, now.Add(-17*time.Minute)),
		newLogEntry(domain.LogEntrySubscription, "Northwind Studio", 299, now.Add(-3*time.Minute)),
	}
	for _, entry := range seed {
		ledger.TransactionLog = append([]domain.LogEntry{entry}, ledger.TransactionLog...)
	}
	return ledger
}

func newLogEntry(kind domain.LogEntryKind, counterparty string, amount float64, at time.Time) domain.LogEntry {
	return domain.LogEntry{
		ID:               uuid.NewString(),
		Kind:             kind,
		CounterpartyName: counterparty,
		Amount:           amount,
		DisplayAmount:    "+" + domain.FormatCurrency(amount),
		OccurredAt:       at,
		OccurredAtLabel:  "Just now",
	}
}

// Snapshot returns a deep copy with relative time labels computed against now.
func (s *Simulator) Snapshot() domain.EngineSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Simulator) snapshotLocked() domain.EngineSnapshot {
	snap := domain.EngineSnapshot{
		Countdown:   s.countdown,
		Squad:       domain.CloneSquad(s.squad),
		Ledger:      s.ledger.Clone(),
		OwnedAssets: s.owned.IDs(),
	}
	now := s.clock.Now()
	for i := range snap.Ledger.TransactionLog {
		entry := &snap.Ledger.TransactionLog[i]
		entry.OccurredAtLabel = domain.RelativeLabel(entry.OccurredAt, now)
	}
	return snap
}

func (s *Simulator) Subscribe(fn func(domain.EngineSnapshot)) func() {
	return s.topic.Subscribe(fn)
}

// BuyAsset adds assetID to the owned set. A repeat purchase is a no-op and
// books no royalty.
func (s *Simulator) BuyAsset(ctx context.Context, assetID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return domain.ErrEmptyAssetID
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	snap, bought := s.recordPurchase(assetID)
	if !bought {
		s.logger.Debug().Str("asset_id", assetID).Msg("asset already owned")
		return nil
	}

	metrics.AssetPurchases.Inc()
	metrics.SimulatorTransactions.WithLabelValues(string(domain.LogEntryAssetRoyalty)).Inc()
	s.logger.Info().Str("asset_id", assetID).Msg("asset purchased")
	s.topic.Publish(snap)
	return nil
}

func (s *Simulator) recordPurchase(assetID string) (domain.EngineSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.owned.Add(assetID) {
		return domain.EngineSnapshot{}, false
	}
	s.ledger.Record(newLogEntry(domain.LogEntryAssetRoyalty, "", assetRoyaltyPurchaseAmount, s.clock.Now()))
	return s.snapshotLocked(), true
}

// Advance moves simulated time forward by dt. Each timer keeps its own
// remainder, so a long dt fires every elapsed tick of every timer.
func (s *Simulator) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	snap, changed := s.advanceTimers(dt)
	if !changed {
		return
	}
	s.topic.Publish(snap)
}

func (s *Simulator) advanceTimers(dt time.Duration) (domain.EngineSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false

	s.countdownElapsed += dt
	for s.countdownElapsed >= CountdownInterval {
		s.countdownElapsed -= CountdownInterval
		s.tickCountdownLocked()
		changed = true
	}

	s.squadElapsed += dt
	for s.squadElapsed >= SquadInterval {
		s.squadElapsed -= SquadInterval
		if s.tickSquadLocked() {
			changed = true
		}
	}

	s.revenueElapsed += dt
	for s.revenueElapsed >= RevenueInterval {
		s.revenueElapsed -= RevenueInterval
		if s.tickRevenueLocked() {
			changed = true
		}
	}

	if !changed {
		return domain.EngineSnapshot{}, false
	}
	return s.snapshotLocked(), true
}

func (s *Simulator) tickCountdownLocked() {
	metrics.SimulatorTicks.WithLabelValues("countdown").Inc()
	if s.countdown <= 0 {
		s.countdown = s.config.CountdownStart
		return
	}
	s.countdown--
}

func (s *Simulator) tickSquadLocked() bool {
	metrics.SimulatorTicks.WithLabelValues("squad").Inc()
	now := s.clock.Now()
	changed := false
	for i := range s.squad {
		member := &s.squad[i]
		if member.Status != domain.SquadStatusIdle && member.Status != domain.SquadStatusActive {
			continue
		}
		if s.rng.Float64() >= s.config.SquadToggleChance {
			continue
		}
		if member.Status == domain.SquadStatusIdle {
			member.SetStatus(domain.SquadStatusActive, squadTasks[s.rng.IntN(len(squadTasks))], now)
		} else {
			member.SetStatus(domain.SquadStatusIdle, "", now)
		}
		changed = true
	}
	return changed
}

func (s *Simulator) tickRevenueLocked() bool {
	metrics.SimulatorTicks.WithLabelValues("revenue").Inc()
	if s.rng.Float64() >= s.config.RevenueChance {
		return false
	}

	kind := domain.LogEntryKinds[s.rng.IntN(len(domain.LogEntryKinds))]
	counterparty := subscriberCompanies[s.rng.IntN(len(subscriberCompanies))]
	if kind == domain.LogEntryAssetRoyalty {
		counterparty = royaltyCreators[s.rng.IntN(len(royaltyCreators))]
	}
	s.ledger.Record(newLogEntry(kind, counterparty, transactionAmounts[kind], s.clock.Now()))
	metrics.SimulatorTransactions.WithLabelValues(string(kind)).Inc()
	return true
}

// Run advances the simulator once per CountdownInterval until ctx ends.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(CountdownInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case tick := <-ticker.C:
			dt := tick.Sub(last)
			last = tick
			s.safeAdvance(dt)
		}
	}
}

func (s *Simulator) safeAdvance(dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn().Str("panic", fmt.Sprint(r)).Msg("simulator tick recovered")
		}
	}()
	s.Advance(dt)
}
