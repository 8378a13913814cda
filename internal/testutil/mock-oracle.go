package testutil

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"storage-price-estimator/internal/core/domain"
)

// MockPriceOracle is a mock of PriceOracle.
type MockPriceOracle struct {
	mock.Mock
}

func (m *MockPriceOracle) GetPrice(ctx context.Context, req domain.PriceRequest) (decimal.Decimal, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPriceOracle) Name() string {
	return "mock"
}

// MockHealthyOracle is a MockPriceOracle that also reports availability.
type MockHealthyOracle struct {
	MockPriceOracle
}

func (m *MockHealthyOracle) IsAvailable(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// PanickingOracle panics on every call.
type PanickingOracle struct{}

func (PanickingOracle) GetPrice(context.Context, domain.PriceRequest) (decimal.Decimal, error) {
	panic("simulated oracle crash")
}

func (PanickingOracle) Name() string {
	return "panicking"
}
