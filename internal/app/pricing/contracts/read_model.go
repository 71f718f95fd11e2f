package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
)

// SnapshotFilter selects a page of snapshots, newest first.
type SnapshotFilter struct {
	PriceListID string     // empty = all price lists
	Before      *time.Time // keyset cursor: only snapshots created strictly before
	Limit       int
}

// SnapshotPage is one page of snapshots. NextBefore is nil on the last page.
type SnapshotPage struct {
	Snapshots  []*domain.ContractPriceSnapshot
	NextBefore *time.Time
}

// SnapshotReadModel serves reporting reads over frozen snapshots.
type SnapshotReadModel interface {
	ListSnapshots(ctx context.Context, filter *SnapshotFilter) (*SnapshotPage, error)
}

// EventFilter selects outbox events, newest first.
type EventFilter struct {
	EventType     string
	AggregateType string
	AggregateID   string
	Status        string
	Limit         int
}

// EventDTO is an outbox event as exposed to readers.
type EventDTO struct {
	EventID       string
	EventType     string
	AggregateType string
	AggregateID   string
	Payload       string
	Status        string
	RetryCount    int64
	LastError     string
	CreatedAt     time.Time
	ProcessedAt   *time.Time
}

// EventsReadModel serves reads over the outbox.
type EventsReadModel interface {
	ListEvents(ctx context.Context, filter *EventFilter) ([]*EventDTO, error)
}
