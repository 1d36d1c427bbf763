package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	realtime "github.com/bnema/gigpulse/internal/adapters/realtime/redis"
	"github.com/bnema/gigpulse/internal/api"
	"github.com/bnema/gigpulse/internal/application"
	"github.com/bnema/gigpulse/internal/config"
	"github.com/bnema/gigpulse/internal/ports"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the engine and Guardian over HTTP",
		Long:  "Run the engine, the Guardian analysis loop and the HTTP API until interrupted. In local mode with redis.url set, snapshots are also mirrored to redis for realtime clients.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = app.config.HTTP.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}

			return app.serve(ctx, listener)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to http.addr)")

	return cmd
}

// serve runs until ctx is done or one of its loops fails. It owns listener.
func (a *app) serve(ctx context.Context, listener net.Listener) error {
	engine, closeEngine, err := a.newEngine(ctx)
	if err != nil {
		_ = listener.Close()
		return err
	}
	defer func() { _ = closeEngine() }()

	broker, err := a.newBroker(ctx)
	if err != nil {
		_ = listener.Close()
		return err
	}
	defer broker.Close()

	server := &http.Server{
		Handler: api.NewRouter(api.Deps{
			Engine:   engine,
			Broker:   broker,
			Support:  a.support,
			Bounties: a.repo,
			Logger:   a.logger,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return engine.Run(gctx) })
	g.Go(func() error {
		return application.RunAnalysis(gctx, broker, engine, a.config.Broker.AnalysisInterval)
	})

	if publisher, closePublisher, err := a.newPublisher(gctx, engine); err != nil {
		a.logger.Warn().Err(err).Msg("snapshot mirroring disabled")
	} else if publisher != nil {
		defer func() { _ = closePublisher() }()
		g.Go(func() error { return publisher.Run(gctx) })
	}

	g.Go(func() error {
		a.logger.Info().Str("addr", listener.Addr().String()).Msg("http server listening")
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newPublisher returns nil when there is nothing to mirror to.
func (a *app) newPublisher(ctx context.Context, engine ports.Engine) (*realtime.Publisher, func() error, error) {
	if a.config.Engine.Mode != config.EngineModeLocal || a.config.Redis.URL == "" {
		return nil, nil, nil
	}

	client, err := realtime.Dial(ctx, a.config.Redis.URL)
	if err != nil {
		return nil, nil, err
	}

	publisher := realtime.NewPublisher(engine, realtime.NewChannel(client), a.redisChannels(), a.clock, a.logger)
	return publisher, client.Close, nil
}
