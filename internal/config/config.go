package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/gigpulse/internal/adapters/textgen"
	"github.com/bnema/gigpulse/internal/domain"
)

const (
	EnvPrefix = "GP"
	ConfigDir = ".gigpulse"
	// CredentialsDir holds file-backed provider keys when pass is unavailable.
	CredentialsDir = "credentials"
	configName     = "config"
	configType     = "toml"

	EngineModeLocal = "local"
	EngineModeRedis = "redis"
)

type Config struct {
	Env         string
	LogLevel    string
	Engine      EngineConfig
	Redis       RedisConfig
	Responder   ResponderConfig
	Broker      BrokerConfig
	Marketplace MarketplaceConfig
	Credentials CredentialsConfig
	HTTP        HTTPConfig
}

type EngineConfig struct {
	Mode           string
	CountdownStart int
	Seed           uint64
}

type RedisConfig struct {
	URL             string
	SnapshotChannel string
	CommandChannel  string
}

type ResponderConfig struct {
	Provider  string
	Model     string
	APIKey    string
	APIKeyRef string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

type BrokerConfig struct {
	ThinkingMin      time.Duration
	ThinkingMax      time.Duration
	GreetingDelay    time.Duration
	FallbackMin      time.Duration
	FallbackMax      time.Duration
	AnalysisInterval time.Duration
}

type MarketplaceConfig struct {
	Path string
}

type CredentialsConfig struct {
	Dir string
}

type HTTPConfig struct {
	Addr string
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// NewViper returns a viper instance bound to ~/.gigpulse/config.toml and
// GP_* environment variables, with every default set. A missing config file
// is not an error.
func NewViper() (*viper.Viper, error) {
	// .env is a development convenience
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	v.SetDefault("marketplace.path", filepath.Join(homeDir, ConfigDir, "marketplace.toml"))
	v.SetDefault("credentials.dir", filepath.Join(homeDir, ConfigDir, CredentialsDir))

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(homeDir, ConfigDir))
	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return v, nil
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("log.level", "info")
	v.SetDefault("engine.mode", EngineModeLocal)
	v.SetDefault("engine.countdown_start", 3600)
	v.SetDefault("engine.seed", 0)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.snapshot_channel", "gigpulse:snapshots")
	v.SetDefault("redis.command_channel", "gigpulse:commands")
	v.SetDefault("responder.provider", textgen.ProviderNone)
	v.SetDefault("responder.model", "")
	v.SetDefault("responder.api_key", "")
	v.SetDefault("responder.api_key_ref", "")
	v.SetDefault("responder.base_url", "")
	v.SetDefault("responder.max_tokens", 512)
	v.SetDefault("responder.timeout", "20s")
	v.SetDefault("broker.thinking_min", "800ms")
	v.SetDefault("broker.thinking_max", "1800ms")
	v.SetDefault("broker.greeting_delay", "600ms")
	v.SetDefault("broker.fallback_min", "800ms")
	v.SetDefault("broker.fallback_max", "2s")
	v.SetDefault("broker.analysis_interval", "8s")
	v.SetDefault("http.addr", "127.0.0.1:8787")
}

// Load reads and validates the configuration from v.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
		SetDefaults(v)
	}

	cfg := Config{
		Env:      strings.ToLower(strings.TrimSpace(v.GetString("env"))),
		LogLevel: v.GetString("log.level"),
		Engine: EngineConfig{
			Mode:           strings.ToLower(strings.TrimSpace(v.GetString("engine.mode"))),
			CountdownStart: v.GetInt("engine.countdown_start"),
			Seed:           v.GetUint64("engine.seed"),
		},
		Redis: RedisConfig{
			URL:             v.GetString("redis.url"),
			SnapshotChannel: v.GetString("redis.snapshot_channel"),
			CommandChannel:  v.GetString("redis.command_channel"),
		},
		Responder: ResponderConfig{
			Provider:  strings.ToLower(strings.TrimSpace(v.GetString("responder.provider"))),
			Model:     v.GetString("responder.model"),
			APIKey:    v.GetString("responder.api_key"),
			APIKeyRef: v.GetString("responder.api_key_ref"),
			BaseURL:   v.GetString("responder.base_url"),
			MaxTokens: v.GetInt("responder.max_tokens"),
			Timeout:   v.GetDuration("responder.timeout"),
		},
		Broker: BrokerConfig{
			ThinkingMin:      v.GetDuration("broker.thinking_min"),
			ThinkingMax:      v.GetDuration("broker.thinking_max"),
			GreetingDelay:    v.GetDuration("broker.greeting_delay"),
			FallbackMin:      v.GetDuration("broker.fallback_min"),
			FallbackMax:      v.GetDuration("broker.fallback_max"),
			AnalysisInterval: v.GetDuration("broker.analysis_interval"),
		},
		Marketplace: MarketplaceConfig{Path: v.GetString("marketplace.path")},
		Credentials: CredentialsConfig{Dir: v.GetString("credentials.dir")},
		HTTP:        HTTPConfig{Addr: v.GetString("http.addr")},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Engine.Mode {
	case EngineModeLocal:
	case EngineModeRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("redis.url is required when engine.mode is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("engine.mode: %w: %q", domain.ErrUnsupportedEngineMode, c.Engine.Mode))
	}

	if c.Engine.CountdownStart <= 0 {
		errs = append(errs, errors.New("engine.countdown_start must be positive"))
	}

	if !slices.Contains(textgen.Providers, c.Responder.Provider) {
		errs = append(errs, fmt.Errorf("responder.provider: %w: %q", domain.ErrUnknownProvider, c.Responder.Provider))
	}
	if c.Responder.Provider != textgen.ProviderNone && c.Responder.APIKey == "" && c.Responder.APIKeyRef == "" && c.Responder.BaseURL == "" {
		errs = append(errs, fmt.Errorf("responder.api_key or responder.api_key_ref is required for provider %q", c.Responder.Provider))
	}

	if c.Broker.ThinkingMin < 0 || c.Broker.ThinkingMax < c.Broker.ThinkingMin {
		errs = append(errs, errors.New("broker.thinking_min must be >= 0 and <= broker.thinking_max"))
	}
	if c.Broker.FallbackMin < 0 || c.Broker.FallbackMax < c.Broker.FallbackMin {
		errs = append(errs, errors.New("broker.fallback_min must be >= 0 and <= broker.fallback_max"))
	}
	if c.Broker.AnalysisInterval <= 0 {
		errs = append(errs, errors.New("broker.analysis_interval must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}
