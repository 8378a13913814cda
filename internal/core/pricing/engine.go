// Package pricing implements the storage price formula.
//
// The price of storing a file is
//
//	(basePrice + ceil(sizeBytes/1024) * bytePrice) * multiplier
//
// where multiplier is the permanent multiplier for permanent storage and 1
// otherwise. All amounts are in the smallest currency unit.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"storage-price-estimator/internal/core/domain"
)

var one = decimal.NewFromInt(1)

// SizeInKilobytes rounds sizeBytes up to whole kilobytes. Zero stays zero and
// negative sizes are treated as zero.
func SizeInKilobytes(sizeBytes int64) int64 {
	if sizeBytes <= 0 {
		return 0
	}
	return (sizeBytes-1)/domain.BytesPerKilobyte + 1
}

// EffectiveMultiplier is the factor applied to the base total.
func EffectiveMultiplier(isPermanent bool, permanentMultiplier decimal.Decimal) decimal.Decimal {
	if isPermanent {
		return permanentMultiplier
	}
	return one
}

// ByteCost is the size-dependent part of the price. It is computed in
// arbitrary precision so large sizes or rates cannot wrap around.
func ByteCost(sizeBytes, bytePrice int64) decimal.Decimal {
	return decimal.NewFromInt(SizeInKilobytes(sizeBytes)).Mul(decimal.NewFromInt(bytePrice))
}

// ComputePrice returns the total price in the smallest currency unit.
// It has no side effects and never fails.
func ComputePrice(sizeBytes int64, isPermanent bool, basePrice, bytePrice int64, permanentMultiplier decimal.Decimal) decimal.Decimal {
	baseTotal := decimal.NewFromInt(basePrice).Add(ByteCost(sizeBytes, bytePrice))
	return baseTotal.Mul(EffectiveMultiplier(isPermanent, permanentMultiplier))
}

// Breakdown computes the full quote for req. scaleFactor converts the total
// to the display unit.
func Breakdown(req domain.PriceRequest, scaleFactor int64) domain.PriceQuote {
	sizeInKB := SizeInKilobytes(req.SizeBytes)
	byteCost := ByteCost(req.SizeBytes, req.BytePrice)
	baseTotal := decimal.NewFromInt(req.BasePrice).Add(byteCost)
	multiplier := EffectiveMultiplier(req.IsPermanent, req.PermanentMultiplier)
	total := baseTotal.Mul(multiplier)

	return domain.PriceQuote{
		SizeBytes:           req.SizeBytes,
		IsPermanent:         req.IsPermanent,
		BasePrice:           req.BasePrice,
		BytePrice:           req.BytePrice,
		SizeInKB:            sizeInKB,
		ByteCost:            byteCost,
		BaseTotal:           baseTotal,
		EffectiveMultiplier: multiplier,
		TotalPrice:          total,
		TotalPriceScaled:    Scale(total, scaleFactor),
	}
}

// Scale converts an amount in the smallest unit into the display unit.
func Scale(amount decimal.Decimal, scaleFactor int64) decimal.Decimal {
	if scaleFactor <= 0 {
		return amount
	}
	return amount.Div(decimal.NewFromInt(scaleFactor))
}

// Engine is the local stand-in for the on-chain price call. It satisfies
// ports.PriceOracle.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Name() string {
	return "local"
}

func (e *Engine) GetPrice(_ context.Context, req domain.PriceRequest) (decimal.Decimal, error) {
	return ComputePrice(req.SizeBytes, req.IsPermanent, req.BasePrice, req.BytePrice, req.PermanentMultiplier), nil
}
