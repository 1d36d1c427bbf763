package application

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

func newTestSimulator(config SimulatorConfig, rng ports.Random, clock ports.Clock) *Simulator {
	if clock == nil {
		clock = newStepClock(testEpoch, 0)
	}
	return NewSimulator(config, rng, clock, zerolog.Nop())
}

func TestSimulatorSeedState(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{}, fixedRandom(0.99, 0), nil)
	snap := sim.Snapshot()

	assert.Equal(t, DefaultCountdownStart, snap.Countdown)
	assert.Len(t, snap.Squad, 5)
	assert.Equal(t, 12450.0, snap.Ledger.RecurringRevenue)
	assert.Equal(t, 3280.0, snap.Ledger.TransactionFees)
	assert.Equal(t, 8920.0, snap.Ledger.MarketplaceVolume)
	assert.Equal(t, 42, snap.Ledger.Velocity)
	require.Len(t, snap.Ledger.TransactionLog, 3)
	assert.Equal(t, domain.LogEntrySubscription, snap.Ledger.TransactionLog[0].Kind)
	assert.Equal(t, "3m ago", snap.Ledger.TransactionLog[0].OccurredAtLabel)
	assert.Empty(t, snap.OwnedAssets)

	for _, member := range snap.Squad {
		assert.Equal(t, member.Status.Working(), member.CurrentTask != "", member.Name)
	}
}

func TestSimulatorCountdownWrapsInsteadOfGoingNegative(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{CountdownStart: 3}, fixedRandom(0.99, 0), nil)

	var seen []int
	for i := 0; i < 10; i++ {
		sim.Advance(time.Second)
		snap := sim.Snapshot()
		require.GreaterOrEqual(t, snap.Countdown, 0)
		seen = append(seen, snap.Countdown)
	}

	assert.Equal(t, []int{2, 1, 0, 3, 2, 1, 0, 3, 2, 1}, seen)
}

func TestSimulatorAdvanceAccumulatesPartialTicks(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{CountdownStart: 10}, fixedRandom(0.99, 0), nil)

	sim.Advance(400 * time.Millisecond)
	sim.Advance(400 * time.Millisecond)
	assert.Equal(t, 10, sim.Snapshot().Countdown)

	sim.Advance(400 * time.Millisecond)
	assert.Equal(t, 9, sim.Snapshot().Countdown)

	sim.Advance(3 * time.Second)
	assert.Equal(t, 6, sim.Snapshot().Countdown)

	sim.Advance(0)
	sim.Advance(-time.Second)
	assert.Equal(t, 6, sim.Snapshot().Countdown)
}

func TestSimulatorSquadTogglesOnlyIdleAndActive(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{RevenueChance: 0.0001}, fixedRandom(0, 1), nil)
	before := sim.Snapshot().Squad

	sim.Advance(SquadInterval)
	after := sim.Snapshot().Squad

	require.Len(t, after, len(before))
	for i := range before {
		switch before[i].Status {
		case domain.SquadStatusIdle:
			assert.Equal(t, domain.SquadStatusActive, after[i].Status, before[i].Name)
			assert.Equal(t, squadTasks[1], after[i].CurrentTask)
			assert.Equal(t, testEpoch, after[i].LastActiveAt)
		case domain.SquadStatusActive:
			assert.Equal(t, domain.SquadStatusIdle, after[i].Status, before[i].Name)
			assert.Empty(t, after[i].CurrentTask)
		default:
			assert.Equal(t, before[i], after[i], before[i].Name)
		}
	}
}

func TestSimulatorSquadUnchangedWhenGateDoesNotFire(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{}, fixedRandom(0.99, 0), nil)
	before := sim.Snapshot()

	sim.Advance(SquadInterval)
	after := sim.Snapshot()

	assert.Equal(t, before.Squad, after.Squad)
	assert.Equal(t, before.Ledger.TransactionLog, after.Ledger.TransactionLog)
}

func TestSimulatorRevenueTickRecordsTransaction(t *testing.T) {
	t.Parallel()

	// The kind index picks bountyFee, the next IntN picks the counterparty.
	rng := &scriptedRandom{floats: []float64{0.99, 0.99, 0.99, 0}, ints: []int{1, 2}}
	sim := newTestSimulator(SimulatorConfig{SquadToggleChance: 0.5}, rng, nil)
	before := sim.Snapshot().Ledger

	sim.Advance(RevenueInterval)
	after := sim.Snapshot().Ledger

	require.Len(t, after.TransactionLog, len(before.TransactionLog)+1)
	entry := after.TransactionLog[0]
	assert.Equal(t, domain.LogEntryBountyFee, entry.Kind)
	assert.Equal(t, subscriberCompanies[2], entry.CounterpartyName)
	assert.Equal(t, "+$45.00", entry.DisplayAmount)
	assert.Equal(t, before.TransactionFees+45, after.TransactionFees)
	assert.Equal(t, before.Velocity+4, after.Velocity)
}

func TestSimulatorLedgerCapKeepsMostRecentFirst(t *testing.T) {
	t.Parallel()

	clock := newStepClock(testEpoch, time.Second)
	sim := newTestSimulator(SimulatorConfig{SquadToggleChance: 0.0001, RevenueChance: 1}, fixedRandom(0, 0), clock)
	seeded := sim.Snapshot().Ledger.TransactionLog

	for i := 0; i < domain.TransactionLogCap+1; i++ {
		sim.Advance(RevenueInterval)
	}

	log := sim.Snapshot().Ledger.TransactionLog
	require.Len(t, log, domain.TransactionLogCap)
	for i := 1; i < len(log); i++ {
		assert.True(t, log[i-1].OccurredAt.After(log[i].OccurredAt), "entry %d is not newer than %d", i-1, i)
	}
	for _, old := range seeded {
		for _, entry := range log {
			assert.NotEqual(t, old.ID, entry.ID)
		}
	}
}

func TestSimulatorAccumulatorsNeverDecrease(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{RevenueChance: 0.9}, ports.NewSeededRandom(7), nil)
	prev := sim.Snapshot().Ledger

	for i := 0; i < 200; i++ {
		sim.Advance(time.Duration(i%9+1) * time.Second)
		if i%25 == 0 {
			require.NoError(t, sim.BuyAsset(context.Background(), "asset-"+string(rune('a'+i%26))))
		}
		next := sim.Snapshot().Ledger
		require.GreaterOrEqual(t, next.RecurringRevenue, prev.RecurringRevenue)
		require.GreaterOrEqual(t, next.TransactionFees, prev.TransactionFees)
		require.GreaterOrEqual(t, next.MarketplaceVolume, prev.MarketplaceVolume)
		require.LessOrEqual(t, len(next.TransactionLog), domain.TransactionLogCap)
		prev = next
	}
}

func TestSimulatorBuyAssetDeduplicates(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{}, fixedRandom(0.99, 0), nil)
	before := sim.Snapshot().Ledger

	require.NoError(t, sim.BuyAsset(context.Background(), "lut-pack-01"))
	require.NoError(t, sim.BuyAsset(context.Background(), " lut-pack-01 "))

	snap := sim.Snapshot()
	assert.Equal(t, []string{"lut-pack-01"}, snap.OwnedAssets)
	assert.Equal(t, before.MarketplaceVolume+25, snap.Ledger.MarketplaceVolume)
	require.Len(t, snap.Ledger.TransactionLog, len(before.TransactionLog)+1)
	assert.Equal(t, domain.LogEntryAssetRoyalty, snap.Ledger.TransactionLog[0].Kind)
	assert.Equal(t, "creator", snap.Ledger.TransactionLog[0].DisplayCounterparty())
}

func TestSimulatorBuyAssetRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{}, fixedRandom(0.99, 0), nil)

	err := sim.BuyAsset(context.Background(), "   ")
	require.ErrorIs(t, err, domain.ErrEmptyAssetID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = sim.BuyAsset(ctx, "lut-pack-01")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sim.Snapshot().OwnedAssets)
}

func TestSimulatorSubscribersAllReceiveUpdates(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{CountdownStart: 30}, fixedRandom(0.99, 0), nil)

	var mu sync.Mutex
	received := map[string][]int{}
	record := func(name string) func(domain.EngineSnapshot) {
		return func(snap domain.EngineSnapshot) {
			mu.Lock()
			defer mu.Unlock()
			received[name] = append(received[name], snap.Countdown)
		}
	}
	unsubscribeA := sim.Subscribe(record("a"))
	unsubscribeB := sim.Subscribe(record("b"))

	sim.Advance(time.Second)
	sim.Advance(500 * time.Millisecond)
	unsubscribeA()
	sim.Advance(500 * time.Millisecond)
	unsubscribeB()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{29}, received["a"])
	assert.Equal(t, []int{29, 28}, received["b"])
}

func TestSimulatorSnapshotIsIndependentCopy(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{}, fixedRandom(0.99, 0), nil)
	require.NoError(t, sim.BuyAsset(context.Background(), "lut-pack-01"))

	snap := sim.Snapshot()
	snap.Squad[0].Name = "mutated"
	snap.Ledger.TransactionLog[0].Amount = -1
	snap.OwnedAssets[0] = "mutated"

	fresh := sim.Snapshot()
	assert.Equal(t, "Nova", fresh.Squad[0].Name)
	assert.Equal(t, 25.0, fresh.Ledger.TransactionLog[0].Amount)
	assert.Equal(t, []string{"lut-pack-01"}, fresh.OwnedAssets)
}

func TestSimulatorRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sim := newTestSimulator(SimulatorConfig{}, fixedRandom(0.99, 0), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

// panickingRandom panics on every draw once armed.
type panickingRandom struct {
	armed atomic.Bool
}

func (r *panickingRandom) Float64() float64 {
	if r.armed.Load() {
		panic("entropy source failed")
	}
	return 0.99
}

func (r *panickingRandom) IntN(int) int {
	if r.armed.Load() {
		panic("entropy source failed")
	}
	return 0
}

func TestSimulatorStaysUsableAfterRecoveredTickPanic(t *testing.T) {
	t.Parallel()

	rng := &panickingRandom{}
	sim := newTestSimulator(SimulatorConfig{}, rng, nil)
	rng.armed.Store(true)

	sim.safeAdvance(SquadInterval)

	done := make(chan domain.EngineSnapshot, 1)
	go func() {
		assert.NoError(t, sim.BuyAsset(context.Background(), "lut-pack-01"))
		done <- sim.Snapshot()
	}()

	select {
	case snap := <-done:
		assert.Equal(t, []string{"lut-pack-01"}, snap.OwnedAssets)
	case <-time.After(2 * time.Second):
		t.Fatal("simulator still locked after a recovered tick panic")
	}
}

func TestSimulatorDeliversSnapshotsInMutationOrder(t *testing.T) {
	t.Parallel()

	sim := newTestSimulator(SimulatorConfig{}, fixedRandom(0.99, 0), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var owned []int
	sim.Subscribe(func(snap domain.EngineSnapshot) {
		first := false
		once.Do(func() { first = true })
		if first {
			close(entered)
			<-release
		}
		mu.Lock()
		defer mu.Unlock()
		owned = append(owned, len(snap.OwnedAssets))
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, sim.BuyAsset(context.Background(), "lut-pack-01"))
	}()
	<-entered

	assert.Len(t, sim.Snapshot().OwnedAssets, 1)

	go func() {
		defer wg.Done()
		assert.NoError(t, sim.BuyAsset(context.Background(), "sfx-pack-02"))
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, owned)
}
