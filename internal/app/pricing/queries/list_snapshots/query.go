package list_snapshots

import (
	"context"
	"time"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Request contains paging and filtering parameters for listing snapshots.
type Request struct {
	PriceListID string     // Filter by source price list
	Before      *time.Time // Cursor from the previous page
	Limit       int        // Page size (default: 50)
}

// Query handles the list snapshots query use case.
type Query struct {
	readModel contracts.SnapshotReadModel
}

// NewQuery creates a new list snapshots query.
func NewQuery(readModel contracts.SnapshotReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves one page of snapshots, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.SnapshotPage, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return q.readModel.ListSnapshots(ctx, &contracts.SnapshotFilter{
		PriceListID: req.PriceListID,
		Before:      req.Before,
		Limit:       limit,
	})
}
