package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "saajhamandi/internal/errors"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Catalog   CatalogConfig
	Voice     VoiceConfig
	Order     OrderConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type CatalogConfig struct {
	// File is an optional YAML catalog. Empty means the built-in table.
	File string
}

type VoiceConfig struct {
	MaxRecording   time.Duration
	SimulationSeed uint64
}

type OrderConfig struct {
	MaxRetryAttempts int
	TxTimeout        time.Duration
}

type SessionConfig struct {
	TTL           time.Duration
	PurgeInterval time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load reads configuration from the environment. When CONFIG_FILE is set the
// file is read first and environment variables override it.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "saajhamandi")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "saajhamandi")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("VOICE_MAX_RECORDING", "10s")
	v.SetDefault("VOICE_SIMULATION_SEED", 0)
	v.SetDefault("ORDER_MAX_RETRY_ATTEMPTS", 3)
	v.SetDefault("ORDER_TX_TIMEOUT", "5s")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("SESSION_PURGE_INTERVAL", "1m")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.NewConfigError("CONFIG_FILE", err.Error())
		}
	}

	var connMaxLifetime, maxRecording, txTimeout, sessionTTL, purgeInterval time.Duration
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"DB_CONN_MAX_LIFETIME", &connMaxLifetime},
		{"VOICE_MAX_RECORDING", &maxRecording},
		{"ORDER_TX_TIMEOUT", &txTimeout},
		{"SESSION_TTL", &sessionTTL},
		{"SESSION_PURGE_INTERVAL", &purgeInterval},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, apperrors.NewConfigError(d.key, err.Error())
		}
		*d.dst = parsed
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DB_ENABLED"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Catalog: CatalogConfig{
			File: v.GetString("CATALOG_FILE"),
		},
		Voice: VoiceConfig{
			MaxRecording:   maxRecording,
			SimulationSeed: v.GetUint64("VOICE_SIMULATION_SEED"),
		},
		Order: OrderConfig{
			MaxRetryAttempts: v.GetInt("ORDER_MAX_RETRY_ATTEMPTS"),
			TxTimeout:        txTimeout,
		},
		Session: SessionConfig{
			TTL:           sessionTTL,
			PurgeInterval: purgeInterval,
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return apperrors.NewConfigError("SERVER_PORT", fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return apperrors.NewConfigError("LOG_FORMAT", fmt.Sprintf("must be json or console, got %q", c.Log.Format))
	}
	if c.Voice.MaxRecording <= 0 {
		return apperrors.NewConfigError("VOICE_MAX_RECORDING", "must be positive")
	}
	if c.Order.MaxRetryAttempts < 1 {
		return apperrors.NewConfigError("ORDER_MAX_RETRY_ATTEMPTS", "must be at least 1")
	}
	if c.Order.TxTimeout <= 0 {
		return apperrors.NewConfigError("ORDER_TX_TIMEOUT", "must be positive")
	}
	if c.RateLimit.RPS < 0 {
		return apperrors.NewConfigError("RATE_LIMIT_RPS", "must not be negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return apperrors.NewConfigError("RATE_LIMIT_BURST", "must be at least 1 when rate limiting is enabled")
	}
	return nil
}
