package cmd

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bnema/gigpulse/internal/adapters/render/dashboard"
	"github.com/bnema/gigpulse/internal/application"
)

const simMessageLimit = 6

type simOptions struct {
	seconds    int
	seed       uint64
	buy        []string
	jsonOutput bool
}

func newSimCmd(app *app) *cobra.Command {
	opts := simOptions{}

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Fast-forward a local engine and show the dashboard",
		Long:  "Advance a fresh simulator by --seconds of synthetic time, one second at a time, with Guardian analysing it every analysis interval. Nothing waits on the wall clock.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.seconds < 0 {
				return errors.New("--seconds must not be negative")
			}

			seed := opts.seed
			if seed == 0 {
				seed = app.config.Engine.Seed
			}
			rng := newRandom(seed)
			sim := app.newSimulator(rng)

			// Only proactive analysis runs here, so the broker never replies.
			broker := application.NewBroker(nil, nil, nil, rng, app.clock, zerolog.Nop(), application.BrokerConfig{})
			defer broker.Close()

			for _, assetID := range opts.buy {
				if err := sim.BuyAsset(cmd.Context(), assetID); err != nil {
					return err
				}
			}

			advanceWithAnalysis(sim, broker, opts.seconds, app.config.Broker.AnalysisInterval)
			broker.Wait()

			snapshot := sim.Snapshot()
			if opts.jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(snapshot)
			}

			rendered, err := app.renderDashboard(dashboard.Board{
				Snapshot: snapshot,
				Messages: broker.Messages(),
			}, dashboard.RenderOptions{Now: app.clock.Now(), MessageLimit: simMessageLimit})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write([]byte(rendered + "\n"))
			return err
		},
	}

	cmd.Flags().IntVar(&opts.seconds, "seconds", 60, "Synthetic seconds to simulate")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed (0 uses engine.seed or the clock)")
	cmd.Flags().StringSliceVar(&opts.buy, "buy", nil, "Buy these asset ids before simulating")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the final snapshot as JSON")

	return cmd
}

func advanceWithAnalysis(engine *application.Simulator, analyzer application.StateAnalyzer, seconds int, interval time.Duration) {
	var sinceAnalysis time.Duration
	for range seconds {
		engine.Advance(application.CountdownInterval)
		sinceAnalysis += application.CountdownInterval
		if interval > 0 && sinceAnalysis >= interval {
			sinceAnalysis = 0
			snapshot := engine.Snapshot()
			analyzer.AnalyzeState(snapshot.Ledger, snapshot.Squad)
		}
	}
}
