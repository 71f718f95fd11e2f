package get_snapshot

import (
	"context"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
)

// Request contains the rental whose frozen price is wanted.
type Request struct {
	RentalID string
}

// Query handles the get snapshot query use case.
type Query struct {
	store contracts.SnapshotStore
}

// NewQuery creates a new get snapshot query.
func NewQuery(store contracts.SnapshotStore) *Query {
	return &Query{
		store: store,
	}
}

// Execute returns domain.ErrSnapshotNotFound when the rental has not been frozen yet.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.ContractPriceSnapshot, error) {
	if req.RentalID == "" {
		return nil, domain.ErrEmptyRentalID
	}
	return q.store.GetByRentalID(ctx, req.RentalID)
}
