package resolve_price_list

import (
	"context"
	"fmt"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
)

// Request identifies a (vehicle, renter) pair.
type Request struct {
	VehicleID string
	RenterID  string
}

// Query resolves the active price list of a pair.
type Query struct {
	reader contracts.ActivePriceListReader
}

// NewQuery creates a new resolve price list query.
func NewQuery(reader contracts.ActivePriceListReader) *Query {
	return &Query{
		reader: reader,
	}
}

// Execute returns domain.ErrNoActivePriceList when the pair has no active list.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.PriceList, error) {
	if req.VehicleID == "" || req.RenterID == "" {
		return nil, fmt.Errorf("%w: vehicle id and renter id are required", domain.ErrInvalidRequest)
	}
	return q.reader.FindActive(ctx, req.VehicleID, req.RenterID)
}
