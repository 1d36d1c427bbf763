package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	credchain "github.com/bnema/gigpulse/internal/adapters/credentials/chain"
	"github.com/bnema/gigpulse/internal/adapters/identity/memory"
	realtime "github.com/bnema/gigpulse/internal/adapters/realtime/redis"
	"github.com/bnema/gigpulse/internal/adapters/render/dashboard"
	tomlrepo "github.com/bnema/gigpulse/internal/adapters/repo/toml"
	"github.com/bnema/gigpulse/internal/adapters/responder/chain"
	"github.com/bnema/gigpulse/internal/adapters/textgen"
	"github.com/bnema/gigpulse/internal/application"
	"github.com/bnema/gigpulse/internal/config"
	"github.com/bnema/gigpulse/internal/logging"
	"github.com/bnema/gigpulse/internal/ports"
)

type app struct {
	config          config.Config
	logger          zerolog.Logger
	repo            *tomlrepo.Repository
	credentials     ports.CredentialStore
	session         *memory.Session
	support         *application.SupportDesk
	clock           ports.Clock
	random          ports.Random
	renderDashboard func(dashboard.Board, dashboard.RenderOptions) (string, error)
}

func wireApp() (*app, error) {
	v, err := config.NewViper()
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{
		Development: cfg.IsDevelopment(),
		Level:       cfg.LogLevel,
		Output:      os.Stderr,
	})

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire marketplace repository: %w", err)
	}

	credentials, err := credchain.NewPassFirstWithFileFallback(cfg.Credentials.Dir)
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	return &app{
		config:          cfg,
		logger:          logger,
		repo:            repo,
		credentials:     credentials,
		session:         memory.NewSession(),
		support:         application.NewSupportDesk(logger),
		clock:           ports.SystemClock{},
		random:          newRandom(cfg.Engine.Seed),
		renderDashboard: dashboard.Render,
	}, nil
}

func newRandom(seed uint64) ports.Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return ports.NewSeededRandom(seed)
}

func (a *app) newSimulator(rng ports.Random) *application.Simulator {
	return application.NewSimulator(application.SimulatorConfig{
		CountdownStart: a.config.Engine.CountdownStart,
	}, rng, a.clock, a.logger)
}

// newEngine picks the engine for engine.mode. The returned close func
// releases the redis connection, if any.
func (a *app) newEngine(ctx context.Context) (ports.Engine, func() error, error) {
	if a.config.Engine.Mode != config.EngineModeRedis {
		return a.newSimulator(a.random), func() error { return nil }, nil
	}

	client, err := realtime.Dial(ctx, a.config.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("wire realtime engine: %w", err)
	}

	engine := realtime.NewEngine(realtime.NewChannel(client), a.redisChannels(), a.clock, a.logger)
	return engine, client.Close, nil
}

func (a *app) redisChannels() realtime.Channels {
	return realtime.Channels{
		Snapshots: a.config.Redis.SnapshotChannel,
		Commands:  a.config.Redis.CommandChannel,
	}
}

func (a *app) newResponder(ctx context.Context) (ports.Responder, error) {
	fallback := application.NewFallbackResponder(a.random, a.config.Broker.FallbackMin, a.config.Broker.FallbackMax)

	apiKey, err := a.responderAPIKey(ctx)
	if err != nil {
		return nil, err
	}

	generator, err := textgen.New(ctx, textgen.Config{
		Provider:  a.config.Responder.Provider,
		Model:     a.config.Responder.Model,
		APIKey:    apiKey,
		BaseURL:   a.config.Responder.BaseURL,
		MaxTokens: a.config.Responder.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("wire text generator: %w", err)
	}

	var primary ports.Responder
	if generator != nil {
		primary = application.NewRemoteResponder(generator)
	}

	responder, err := chain.NewResponderChecked(primary, fallback, a.config.Responder.Timeout, a.logger)
	if err != nil {
		return nil, fmt.Errorf("wire responder chain: %w", err)
	}
	return responder, nil
}

// responderAPIKey prefers an inline key and otherwise resolves
// responder.api_key_ref through the credential store.
func (a *app) responderAPIKey(ctx context.Context) (string, error) {
	cfg := a.config.Responder
	if cfg.APIKey != "" || cfg.APIKeyRef == "" || cfg.Provider == textgen.ProviderNone {
		return cfg.APIKey, nil
	}

	key, err := a.credentials.Get(ctx, cfg.APIKeyRef)
	if err != nil {
		return "", fmt.Errorf("resolve responder api key: %w", err)
	}
	return key, nil
}

func (a *app) newBroker(ctx context.Context) (*application.Broker, error) {
	responder, err := a.newResponder(ctx)
	if err != nil {
		return nil, err
	}

	contexts := application.NewContextBuilder(a.repo, a.repo, a.repo, a.logger)
	return application.NewBroker(responder, contexts, a.session, a.random, a.clock, a.logger, application.BrokerConfig{
		ThinkingMin:   a.config.Broker.ThinkingMin,
		ThinkingMax:   a.config.Broker.ThinkingMax,
		GreetingDelay: a.config.Broker.GreetingDelay,
	}), nil
}
