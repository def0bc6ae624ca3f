// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (ESCRIBA_* runtime override)
//  2. Config file (~/.escriba/config.yaml)
//  3. Default values
//
// Error handling uses sentinel errors checked with errors.Is and
// wrapped with fmt.Errorf("%w: ...") for context.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAgentURL indicates no generation agent endpoint is configured.
	ErrMissingAgentURL = errors.New("missing agent URL")

	// ErrInvalidAgentURL indicates the agent endpoint is not an HTTP(S) URL.
	ErrInvalidAgentURL = errors.New("invalid agent URL")

	// ErrInvalidGenerationCost indicates the per-generation cost is out of range.
	ErrInvalidGenerationCost = errors.New("invalid generation cost")

	// ErrInvalidInitialBalance indicates the initial balance is negative.
	ErrInvalidInitialBalance = errors.New("invalid initial balance")

	// ErrInvalidTimeout indicates the request timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid request timeout")
)

const (
	// DefaultGenerationCost is the fixed point cost of one generation.
	DefaultGenerationCost = 10

	// DefaultInitialBalance is the starter allowance granted to a new
	// local store.
	DefaultInitialBalance = 50

	// DefaultAgentID identifies the single content-generation agent.
	DefaultAgentID = "escriba-trabalhos"

	// DefaultRequestTimeoutMs bounds one generation call. Generations
	// are slow; the timeout is generous on purpose.
	DefaultRequestTimeoutMs = 120_000

	// MaxRequestTimeoutMs is the upper bound accepted for the timeout.
	MaxRequestTimeoutMs = 600_000

	configDirName  = ".escriba"
	configFileName = "config"
	dbFileName     = "escriba.db"
)

// Config stores application configuration.
type Config struct {
	// Generation agent endpoint and identity
	AgentURL         string `mapstructure:"agent_url"`
	AgentID          string `mapstructure:"agent_id"`
	RequestTimeoutMs int    `mapstructure:"request_timeout_ms"`

	// Point economy
	GenerationCost int `mapstructure:"generation_cost"`
	InitialBalance int `mapstructure:"initial_balance"`

	// Local state
	DataDir string `mapstructure:"data_dir"`

	// UI
	Language string `mapstructure:"language"`
	Debug    bool   `mapstructure:"debug"`
}

// Load reads configuration from defaults, the config file and
// ESCRIBA_* environment variables, then validates it.
func Load() (*Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("determine home directory: %w", err)
	}
	defaultDataDir := filepath.Join(home, configDirName)

	v.SetDefault("agent_url", "")
	v.SetDefault("agent_id", DefaultAgentID)
	v.SetDefault("request_timeout_ms", DefaultRequestTimeoutMs)
	v.SetDefault("generation_cost", DefaultGenerationCost)
	v.SetDefault("initial_balance", DefaultInitialBalance)
	v.SetDefault("data_dir", defaultDataDir)
	v.SetDefault("language", "pt-BR")
	v.SetDefault("debug", false)

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultDataDir)

	v.SetEnvPrefix("ESCRIBA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// Missing file is fine; defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}
	if c.AgentURL == "" {
		return fmt.Errorf("%w: set agent_url in config or ESCRIBA_AGENT_URL", ErrMissingAgentURL)
	}
	if !strings.HasPrefix(c.AgentURL, "http://") && !strings.HasPrefix(c.AgentURL, "https://") {
		return fmt.Errorf("%w: %q", ErrInvalidAgentURL, c.AgentURL)
	}
	if c.GenerationCost <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidGenerationCost, c.GenerationCost)
	}
	if c.InitialBalance < 0 {
		return fmt.Errorf("%w: %d (must be non-negative)", ErrInvalidInitialBalance, c.InitialBalance)
	}
	if c.RequestTimeoutMs <= 0 || c.RequestTimeoutMs > MaxRequestTimeoutMs {
		return fmt.Errorf("%w: %d ms (must be in 1..%d)", ErrInvalidTimeout, c.RequestTimeoutMs, MaxRequestTimeoutMs)
	}
	return nil
}

// DatabasePath returns the SQLite file path under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, dbFileName)
}
