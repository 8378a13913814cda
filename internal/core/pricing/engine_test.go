package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storage-price-estimator/internal/core/domain"
)

var five = decimal.NewFromInt(5)

func TestSizeInKilobytes(t *testing.T) {
	cases := []struct {
		size int64
		want int64
	}{
		{0, 0},
		{1, 1},
		{1023, 1},
		{1024, 1},
		{1025, 2},
		{2048, 2},
		{1_048_576, 1024},
		{-10, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SizeInKilobytes(tc.size), "size %d", tc.size)
	}
}

func TestComputePrice_Scenarios(t *testing.T) {
	t.Run("temporary 1 MiB", func(t *testing.T) {
		price := ComputePrice(1_048_576, false, 250000, 100, five)
		assert.True(t, price.Equal(decimal.NewFromInt(352400)), price.String())
	})

	t.Run("permanent 1 MiB", func(t *testing.T) {
		price := ComputePrice(1_048_576, true, 250000, 100, five)
		assert.True(t, price.Equal(decimal.NewFromInt(1762000)), price.String())
	})

	t.Run("empty file", func(t *testing.T) {
		price := ComputePrice(0, false, 250000, 100, five)
		assert.True(t, price.Equal(decimal.NewFromInt(250000)), price.String())
	})

	t.Run("empty permanent file", func(t *testing.T) {
		price := ComputePrice(0, true, 250000, 100, five)
		assert.True(t, price.Equal(decimal.NewFromInt(1250000)), price.String())
	})

	t.Run("fractional multiplier", func(t *testing.T) {
		price := ComputePrice(1, true, 3, 0, decimal.RequireFromString("1.5"))
		assert.Equal(t, "4.5", price.String())
	})
}

var (
	sizeGrid  = []int64{0, 1, 512, 1023, 1024, 1025, 4096, 65_535, 1_048_576, 52_428_800}
	priceGrid = []int64{1, 100, 250000}
	multGrid  = []decimal.Decimal{decimal.NewFromInt(1), decimal.RequireFromString("1.25"), five}
)

func TestComputePrice_NonNegative(t *testing.T) {
	for _, size := range sizeGrid {
		for _, base := range priceGrid {
			for _, rate := range priceGrid {
				for _, m := range multGrid {
					for _, permanent := range []bool{false, true} {
						price := ComputePrice(size, permanent, base, rate, m)
						assert.False(t, price.IsNegative(), "size=%d base=%d rate=%d", size, base, rate)
					}
				}
			}
		}
	}
}

func TestComputePrice_MonotonicInSize(t *testing.T) {
	for _, permanent := range []bool{false, true} {
		prev := decimal.Zero
		for _, size := range sizeGrid {
			price := ComputePrice(size, permanent, 250000, 100, five)
			assert.True(t, price.GreaterThanOrEqual(prev), "size %d: %s < %s", size, price, prev)
			prev = price
		}
	}
}

func TestComputePrice_MonotonicInRates(t *testing.T) {
	for _, size := range sizeGrid {
		prev := decimal.Zero
		for _, base := range priceGrid {
			price := ComputePrice(size, false, base, 100, five)
			assert.True(t, price.GreaterThanOrEqual(prev))
			prev = price
		}

		prev = decimal.Zero
		for _, rate := range priceGrid {
			price := ComputePrice(size, false, 250000, rate, five)
			assert.True(t, price.GreaterThanOrEqual(prev))
			prev = price
		}
	}
}

func TestComputePrice_PermanenceFactor(t *testing.T) {
	for _, size := range sizeGrid {
		for _, m := range multGrid {
			temporary := ComputePrice(size, false, 250000, 100, m)
			permanent := ComputePrice(size, true, 250000, 100, m)
			assert.True(t, permanent.Equal(temporary.Mul(m)), "size=%d m=%s", size, m)
			if m.GreaterThan(decimal.NewFromInt(1)) {
				assert.True(t, permanent.GreaterThan(temporary))
			}
		}
	}
}

func TestBreakdown(t *testing.T) {
	q := Breakdown(domain.PriceRequest{
		SizeBytes:           1_048_576,
		IsPermanent:         false,
		BasePrice:           250000,
		BytePrice:           100,
		PermanentMultiplier: five,
	}, domain.DefaultScaleFactor)

	assert.Equal(t, int64(1024), q.SizeInKB)
	assert.Equal(t, "102400", q.ByteCost.String())
	assert.Equal(t, "352400", q.BaseTotal.String())
	assert.True(t, q.EffectiveMultiplier.Equal(decimal.NewFromInt(1)))
	assert.True(t, q.TotalPrice.Equal(decimal.NewFromInt(352400)))
	assert.Equal(t, "0.352400", q.TotalPriceScaled.StringFixed(6))
	assert.Equal(t, "temporary", q.StorageTier())
}

func TestComputePrice_LargeInputsDoNotWrap(t *testing.T) {
	price := ComputePrice(1_048_576, false, 250000, 9007199254740993, five)
	assert.Equal(t, "9223372036855026832", price.String())

	const maxInt64 = int64(^uint64(0) >> 1)
	small := ComputePrice(maxInt64-1, true, maxInt64, maxInt64, five)
	large := ComputePrice(maxInt64, true, maxInt64, maxInt64, five)
	assert.True(t, small.IsPositive())
	assert.True(t, large.GreaterThanOrEqual(small))
}

func TestBreakdown_LargeInputs(t *testing.T) {
	q := Breakdown(domain.PriceRequest{
		SizeBytes:           1_048_576,
		BasePrice:           250000,
		BytePrice:           9007199254740993,
		PermanentMultiplier: five,
	}, domain.DefaultScaleFactor)

	assert.Equal(t, "9223372036854776832", q.ByteCost.String())
	assert.Equal(t, "9223372036855026832", q.BaseTotal.String())
	assert.True(t, q.TotalPrice.Equal(q.BaseTotal))
	assert.Equal(t, "9223372036855.026832", q.TotalPriceScaled.StringFixed(6))
}

func TestBreakdown_ZeroSize(t *testing.T) {
	q := Breakdown(domain.PriceRequest{BasePrice: 250000, BytePrice: 100, IsPermanent: true, PermanentMultiplier: five}, domain.DefaultScaleFactor)

	assert.Equal(t, "0", q.ByteCost.String())
	assert.True(t, q.TotalPrice.Equal(decimal.NewFromInt(250000).Mul(five)))
	assert.Equal(t, "permanent", q.StorageTier())
}

func TestBreakdown_ScaleRoundTrip(t *testing.T) {
	scale := decimal.NewFromInt(domain.DefaultScaleFactor)
	for _, size := range sizeGrid {
		for _, permanent := range []bool{false, true} {
			q := Breakdown(domain.PriceRequest{
				SizeBytes: size, IsPermanent: permanent,
				BasePrice: 250000, BytePrice: 100, PermanentMultiplier: five,
			}, domain.DefaultScaleFactor)
			assert.True(t, q.TotalPriceScaled.Mul(scale).Equal(q.TotalPrice), "size=%d", size)
			assert.True(t, q.TotalPrice.Equal(ComputePrice(size, permanent, 250000, 100, five)))
		}
	}
}

func TestEngine_GetPrice(t *testing.T) {
	e := NewEngine()
	price, err := e.GetPrice(context.Background(), domain.PriceRequest{
		SizeBytes: 1_048_576, IsPermanent: true,
		BasePrice: 250000, BytePrice: 100, PermanentMultiplier: five,
	})
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1762000)))
	assert.Equal(t, "local", e.Name())
}
