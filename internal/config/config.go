package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"storage-price-estimator/internal/core/domain"
)

type Config struct {
	Server  ServerConfig
	Pricing PricingConfig
	Oracle  OracleConfig
	Metrics MetricsConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type PricingConfig struct {
	BasePrice           int64
	BytePrice           int64
	PermanentMultiplier decimal.Decimal
	ScaleFactor         int64
	MaxUploadBytes      int64
}

// Rates returns the immutable pricing defaults handed to the engine and service.
func (p PricingConfig) Rates() domain.Rates {
	return domain.Rates{
		BasePrice:           p.BasePrice,
		BytePrice:           p.BytePrice,
		PermanentMultiplier: p.PermanentMultiplier,
		ScaleFactor:         p.ScaleFactor,
	}
}

// OracleConfig configures the optional remote price oracle. When disabled the
// local pricing engine answers every quote.
type OracleConfig struct {
	Enabled       bool
	URL           string
	Timeout       time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration
	CacheTTL      time.Duration
	CacheSize     int
}

type MetricsConfig struct {
	Enabled bool
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 3000)
	v.SetDefault("PRICING_BASE_PRICE", domain.DefaultBasePrice)
	v.SetDefault("PRICING_BYTE_PRICE", domain.DefaultBytePrice)
	v.SetDefault("PRICING_PERMANENT_MULTIPLIER", fmt.Sprint(domain.DefaultPermanentMultiplier))
	v.SetDefault("PRICING_SCALE_FACTOR", domain.DefaultScaleFactor)
	v.SetDefault("PRICING_MAX_UPLOAD_BYTES", domain.DefaultMaxUploadBytes)
	v.SetDefault("ORACLE_ENABLED", false)
	v.SetDefault("ORACLE_URL", "")
	v.SetDefault("ORACLE_TIMEOUT", "5s")
	v.SetDefault("ORACLE_RETRY_ATTEMPTS", 3)
	v.SetDefault("ORACLE_RETRY_DELAY", "200ms")
	v.SetDefault("ORACLE_CACHE_TTL", "0s")
	v.SetDefault("ORACLE_CACHE_SIZE", 1024)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	multiplier, err := decimal.NewFromString(v.GetString("PRICING_PERMANENT_MULTIPLIER"))
	if err != nil {
		return nil, fmt.Errorf("parse PRICING_PERMANENT_MULTIPLIER: %w", err)
	}

	timeout, err := time.ParseDuration(v.GetString("ORACLE_TIMEOUT"))
	if err != nil {
		timeout = 5 * time.Second
	}
	retryDelay, err := time.ParseDuration(v.GetString("ORACLE_RETRY_DELAY"))
	if err != nil {
		retryDelay = 200 * time.Millisecond
	}
	cacheTTL, err := time.ParseDuration(v.GetString("ORACLE_CACHE_TTL"))
	if err != nil {
		cacheTTL = 0
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Pricing: PricingConfig{
			BasePrice:           v.GetInt64("PRICING_BASE_PRICE"),
			BytePrice:           v.GetInt64("PRICING_BYTE_PRICE"),
			PermanentMultiplier: multiplier,
			ScaleFactor:         v.GetInt64("PRICING_SCALE_FACTOR"),
			MaxUploadBytes:      v.GetInt64("PRICING_MAX_UPLOAD_BYTES"),
		},
		Oracle: OracleConfig{
			Enabled:       v.GetBool("ORACLE_ENABLED"),
			URL:           v.GetString("ORACLE_URL"),
			Timeout:       timeout,
			RetryAttempts: v.GetUint("ORACLE_RETRY_ATTEMPTS"),
			RetryDelay:    retryDelay,
			CacheTTL:      cacheTTL,
			CacheSize:     v.GetInt("ORACLE_CACHE_SIZE"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	if err := cfg.Pricing.Rates().Validate(); err != nil {
		return nil, err
	}
	if cfg.Pricing.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("PRICING_MAX_UPLOAD_BYTES must be positive, got %d", cfg.Pricing.MaxUploadBytes)
	}

	return cfg, nil
}
