package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storage-price-estimator/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, int64(250000), cfg.Pricing.BasePrice)
	assert.Equal(t, int64(100), cfg.Pricing.BytePrice)
	assert.True(t, cfg.Pricing.PermanentMultiplier.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, int64(1_000_000), cfg.Pricing.ScaleFactor)
	assert.Equal(t, int64(50*1024*1024), cfg.Pricing.MaxUploadBytes)
	assert.False(t, cfg.Oracle.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Oracle.Timeout)
	assert.Equal(t, uint(3), cfg.Oracle.RetryAttempts)
	assert.Equal(t, time.Duration(0), cfg.Oracle.CacheTTL)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("PRICING_BASE_PRICE", "1000")
	t.Setenv("PRICING_PERMANENT_MULTIPLIER", "2.5")
	t.Setenv("ORACLE_ENABLED", "true")
	t.Setenv("ORACLE_URL", "http://oracle:9000")
	t.Setenv("ORACLE_CACHE_TTL", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(1000), cfg.Pricing.BasePrice)
	assert.Equal(t, "2.5", cfg.Pricing.PermanentMultiplier.String())
	assert.True(t, cfg.Oracle.Enabled)
	assert.Equal(t, "http://oracle:9000", cfg.Oracle.URL)
	assert.Equal(t, time.Minute, cfg.Oracle.CacheTTL)

	rates := cfg.Pricing.Rates()
	assert.Equal(t, int64(1000), rates.BasePrice)
	assert.Equal(t, domain.DefaultBytePrice, rates.BytePrice)
}

func TestLoad_InvalidRates(t *testing.T) {
	t.Setenv("PRICING_PERMANENT_MULTIPLIER", "0.5")

	_, err := Load()
	assert.ErrorIs(t, err, domain.ErrInvalidRates)
}

func TestLoad_InvalidMultiplier(t *testing.T) {
	t.Setenv("PRICING_PERMANENT_MULTIPLIER", "five")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidBytePrice(t *testing.T) {
	t.Setenv("PRICING_BYTE_PRICE", "0")

	_, err := Load()
	assert.ErrorIs(t, err, domain.ErrInvalidRates)
}
