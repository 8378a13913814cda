package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"storage-price-estimator/internal/core/domain"
	ports "storage-price-estimator/internal/core/ports/output"
	"storage-price-estimator/internal/core/pricing"
	"storage-price-estimator/internal/metrics"
)

// QuoteInput carries the raw request fields as received from the caller.
// FileSize is nil when no file was supplied.
type QuoteInput struct {
	FileSize    *int64
	IsPermanent any
	BasePrice   any
	BytePrice   any
}

type QuoteService struct {
	oracle ports.PriceOracle
	rates  domain.Rates
}

func NewQuoteService(oracle ports.PriceOracle, rates domain.Rates) *QuoteService {
	return &QuoteService{oracle: oracle, rates: rates}
}

// Defaults returns the configured rates used when the caller omits a field.
func (s *QuoteService) Defaults() domain.Rates {
	return s.rates
}

func (s *QuoteService) OracleName() string {
	return s.oracle.Name()
}

// OracleAvailable reports whether the oracle can currently answer. Local
// oracles are always available.
func (s *QuoteService) OracleAvailable(ctx context.Context) bool {
	if hc, ok := s.oracle.(ports.HealthChecker); ok {
		return hc.IsAvailable(ctx)
	}
	return true
}

// Normalize applies the defaulting rules to in. It does not validate the file size.
func (s *QuoteService) Normalize(in QuoteInput) domain.PriceRequest {
	var size int64
	if in.FileSize != nil {
		size = *in.FileSize
	}
	return domain.PriceRequest{
		SizeBytes:           size,
		IsPermanent:         ParsePermanent(in.IsPermanent),
		BasePrice:           resolvePrice("basePrice", in.BasePrice, s.rates.BasePrice),
		BytePrice:           resolvePrice("bytePrice", in.BytePrice, s.rates.BytePrice),
		PermanentMultiplier: s.rates.PermanentMultiplier,
	}
}

// Quote validates and normalizes in, asks the oracle for the price and
// assembles the full breakdown.
func (s *QuoteService) Quote(ctx context.Context, in QuoteInput) (*domain.PriceQuote, error) {
	tier := domain.StorageTier(ParsePermanent(in.IsPermanent))

	if in.FileSize == nil {
		metrics.QuoteFailed(tier, "missing_input")
		return nil, domain.ErrMissingInput
	}
	if *in.FileSize < 0 {
		metrics.QuoteFailed(tier, "invalid_input")
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidFileSize, *in.FileSize)
	}

	req := s.Normalize(in)

	price, err := s.price(ctx, req)
	if err != nil {
		metrics.QuoteFailed(tier, "computation_failure")
		return nil, fmt.Errorf("%w: %w", domain.ErrComputationFailure, err)
	}

	quote := pricing.Breakdown(req, s.rates.ScaleFactor)
	quote.TotalPrice = price
	quote.TotalPriceScaled = pricing.Scale(price, s.rates.ScaleFactor)

	log.WithFields(log.Fields{
		"size_bytes":   quote.SizeBytes,
		"storage_tier": tier,
		"base_price":   quote.BasePrice,
		"byte_price":   quote.BytePrice,
		"price":        quote.TotalPrice.String(),
		"oracle":       s.oracle.Name(),
	}).Debug("price quote computed")

	metrics.QuoteSucceeded(tier, price.InexactFloat64(), quote.SizeBytes)
	return &quote, nil
}

func (s *QuoteService) price(ctx context.Context, req domain.PriceRequest) (price decimal.Decimal, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("oracle %s panicked: %v", s.oracle.Name(), r)
		}
	}()

	price, err = s.oracle.GetPrice(ctx, req)
	if err != nil {
		return decimal.Zero, err
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("oracle %s returned negative price %s", s.oracle.Name(), price)
	}
	return price, nil
}
