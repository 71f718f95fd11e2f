package list_events

import (
	"context"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType     string // e.g. "contract_snapshot.frozen"
	AggregateType string // "price_list" or "contract_snapshot"
	AggregateID   string // price list id or rental id
	Status        string // "pending", "completed", "failed"
	Limit         int    // default 100
}

// Query handles the list events query use case.
type Query struct {
	readModel contracts.EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel contracts.EventsReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a list of events with filtering.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.EventDTO, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	return q.readModel.ListEvents(ctx, &contracts.EventFilter{
		EventType:     req.EventType,
		AggregateType: req.AggregateType,
		AggregateID:   req.AggregateID,
		Status:        req.Status,
		Limit:         limit,
	})
}
