package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	DefaultBasePrice           int64 = 250000
	DefaultBytePrice           int64 = 100
	DefaultPermanentMultiplier int64 = 5
	DefaultScaleFactor         int64 = 1_000_000
	DefaultMaxUploadBytes      int64 = 50 * 1024 * 1024

	BytesPerKilobyte int64 = 1024
)

// Rates is the immutable pricing configuration handed to the engine and the
// quote service at construction.
type Rates struct {
	BasePrice           int64
	BytePrice           int64
	PermanentMultiplier decimal.Decimal
	ScaleFactor         int64
}

func DefaultRates() Rates {
	return Rates{
		BasePrice:           DefaultBasePrice,
		BytePrice:           DefaultBytePrice,
		PermanentMultiplier: decimal.NewFromInt(DefaultPermanentMultiplier),
		ScaleFactor:         DefaultScaleFactor,
	}
}

func (r Rates) Validate() error {
	if r.BasePrice <= 0 {
		return fmt.Errorf("%w: base price must be positive, got %d", ErrInvalidRates, r.BasePrice)
	}
	if r.BytePrice <= 0 {
		return fmt.Errorf("%w: byte price must be positive, got %d", ErrInvalidRates, r.BytePrice)
	}
	if r.PermanentMultiplier.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: permanent multiplier must be >= 1, got %s", ErrInvalidRates, r.PermanentMultiplier)
	}
	if r.ScaleFactor <= 0 {
		return fmt.Errorf("%w: scale factor must be positive, got %d", ErrInvalidRates, r.ScaleFactor)
	}
	return nil
}

// PriceRequest is the normalized input of a single price computation.
type PriceRequest struct {
	SizeBytes           int64
	IsPermanent         bool
	BasePrice           int64
	BytePrice           int64
	PermanentMultiplier decimal.Decimal
}

// PriceQuote carries the price and every intermediate value of its breakdown.
// Prices are in the smallest currency unit (microAlgos) unless scaled.
type PriceQuote struct {
	SizeBytes           int64
	IsPermanent         bool
	BasePrice           int64
	BytePrice           int64
	SizeInKB            int64
	ByteCost            decimal.Decimal
	BaseTotal           decimal.Decimal
	EffectiveMultiplier decimal.Decimal
	TotalPrice          decimal.Decimal
	TotalPriceScaled    decimal.Decimal
}

// StorageTier names the duration tier, used for labels and display.
func (q *PriceQuote) StorageTier() string {
	return StorageTier(q.IsPermanent)
}

func StorageTier(isPermanent bool) string {
	if isPermanent {
		return "permanent"
	}
	return "temporary"
}
