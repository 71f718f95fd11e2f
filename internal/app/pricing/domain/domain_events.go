package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// PriceListCreatedEvent is emitted when a price list is created.
type PriceListCreatedEvent struct {
	PriceListID   string
	VehicleID     string
	RenterID      string
	Currency      string
	BaseDailyRate int64
	SeasonCount   int
	TierCount     int
	CreatedAt     time.Time
}

func (e *PriceListCreatedEvent) EventType() string {
	return "price_list.created"
}

func (e *PriceListCreatedEvent) AggregateID() string {
	return e.PriceListID
}

// PriceListActivatedEvent is emitted when a price list becomes the active one for its pair.
type PriceListActivatedEvent struct {
	PriceListID string
	VehicleID   string
	RenterID    string
	PublishedAt time.Time
}

func (e *PriceListActivatedEvent) EventType() string {
	return "price_list.activated"
}

func (e *PriceListActivatedEvent) AggregateID() string {
	return e.PriceListID
}

// PriceListDeactivatedEvent is emitted when a price list is superseded.
type PriceListDeactivatedEvent struct {
	PriceListID string
	VehicleID   string
	RenterID    string
	Timestamp   time.Time
}

func (e *PriceListDeactivatedEvent) EventType() string {
	return "price_list.deactivated"
}

func (e *PriceListDeactivatedEvent) AggregateID() string {
	return e.PriceListID
}

// ContractSnapshotFrozenEvent is emitted once per rental, when its contract price is frozen.
type ContractSnapshotFrozenEvent struct {
	RentalID    string
	PriceListID string
	Currency    string
	Days        int
	TariffTotal int64
	Deposit     int64
	CreatedBy   string
	FrozenAt    time.Time
}

func (e *ContractSnapshotFrozenEvent) EventType() string {
	return "contract_snapshot.frozen"
}

func (e *ContractSnapshotFrozenEvent) AggregateID() string {
	return e.RentalID
}
