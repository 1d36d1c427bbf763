package application

import (
	"context"
	"time"

	"github.com/bnema/gigpulse/internal/domain"
	"github.com/bnema/gigpulse/internal/ports"
)

const DefaultAnalysisInterval = 8 * time.Second

type StateAnalyzer interface {
	AnalyzeState(ledger domain.RevenueLedger, squad []domain.SquadMember) bool
}

// RunAnalysis feeds a fresh engine snapshot to analyzer every interval until
// ctx is done.
func RunAnalysis(ctx context.Context, analyzer StateAnalyzer, engine ports.Engine, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultAnalysisInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snap := engine.Snapshot()
			analyzer.AnalyzeState(snap.Ledger, snap.Squad)
		}
	}
}
