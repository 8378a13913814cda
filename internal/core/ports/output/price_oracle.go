package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"storage-price-estimator/internal/core/domain"
)

// PriceOracle answers the storage price of a normalized request in the
// smallest currency unit. Implementations must be safe for concurrent use.
type PriceOracle interface {
	GetPrice(ctx context.Context, req domain.PriceRequest) (decimal.Decimal, error)
	Name() string
}

// HealthChecker is implemented by oracles that depend on a remote endpoint.
type HealthChecker interface {
	IsAvailable(ctx context.Context) bool
}
