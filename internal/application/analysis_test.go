package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bnema/gigpulse/internal/domain"
)

type recordingAnalyzer struct {
	mu    sync.Mutex
	calls int
	idle  []int
}

func (a *recordingAnalyzer) AnalyzeState(_ domain.RevenueLedger, squad []domain.SquadMember) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	a.idle = append(a.idle, domain.IdleCount(squad))
	return false
}

func (a *recordingAnalyzer) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func TestRunAnalysisFeedsSnapshotsUntilCanceled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sim := NewSimulator(SimulatorConfig{}, fixedRandom(0.99, 0), nil, zerolog.Nop())
	analyzer := &recordingAnalyzer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- RunAnalysis(ctx, analyzer, sim, 5*time.Millisecond) }()

	require.Eventually(t, func() bool { return analyzer.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	analyzer.mu.Lock()
	defer analyzer.mu.Unlock()
	assert.Equal(t, 1, analyzer.idle[0])
}
