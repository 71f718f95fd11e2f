package get_price_list

import (
	"context"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
)

// Request contains the price list ID to retrieve.
type Request struct {
	PriceListID string
}

// PriceListGetter loads a price list by id.
type PriceListGetter interface {
	GetByID(ctx context.Context, priceListID string) (*domain.PriceList, error)
}

// Query handles the get price list query use case.
type Query struct {
	repo PriceListGetter
}

// NewQuery creates a new get price list query.
func NewQuery(repo PriceListGetter) *Query {
	return &Query{
		repo: repo,
	}
}

// Execute retrieves a price list with its seasons and tiers.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.PriceList, error) {
	return q.repo.GetByID(ctx, req.PriceListID)
}
