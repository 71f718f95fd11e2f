package contractstest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
)

// MockPriceListReader is a testify mock of ActivePriceListReader.
type MockPriceListReader struct {
	mock.Mock
}

var _ contracts.ActivePriceListReader = (*MockPriceListReader)(nil)

func (m *MockPriceListReader) FindActive(ctx context.Context, vehicleID, renterID string) (*domain.PriceList, error) {
	args := m.Called(ctx, vehicleID, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceList), args.Error(1)
}
