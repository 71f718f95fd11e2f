package domain

import (
	"fmt"
	"time"
)

// Field names for change tracking
const (
	FieldActive      = "active"
	FieldPublishedAt = "published_at"
)

// PriceListParams carries the configurable part of a price list.
// It is also the shape used to cache and seed price lists.
type PriceListParams struct {
	ID                   string         `json:"id"`
	VehicleID            string         `json:"vehicle_id"`
	RenterID             string         `json:"renter_id"`
	Currency             string         `json:"currency"`
	BaseDailyRate        int64          `json:"base_daily_rate,string"`
	WeekendSurchargePct  Percent        `json:"weekend_surcharge_pct"`
	KmIncludedPerDay     *int64         `json:"km_included_per_day,omitempty,string"`
	ExtraKmRate          *int64         `json:"extra_km_rate,omitempty,string"`
	Deposit              int64          `json:"deposit,string"`
	Rounding             RoundingMode   `json:"rounding"`
	SecondDriverDailyFee int64          `json:"second_driver_daily_fee,string"`
	Seasons              []Season       `json:"seasons,omitempty"`
	Tiers                []DurationTier `json:"tiers,omitempty"`
}

// PriceList is the aggregate root for the pricing configuration of one vehicle under one renter.
// The pricing core reads it but never mutates it; only activation changes its state.
type PriceList struct {
	id                   string
	vehicleID            string
	renterID             string
	currency             Currency
	baseDailyRate        int64
	weekendSurchargePct  Percent
	kmIncludedPerDay     *int64
	extraKmRate          *int64
	deposit              int64
	rounding             RoundingMode
	secondDriverDailyFee int64
	seasons              []Season
	tiers                []DurationTier
	active               bool
	publishedAt          *time.Time
	createdAt            time.Time
	updatedAt            time.Time

	// Change tracking for optimized repository updates
	changes *ChangeTracker

	// Domain events to be published
	events []DomainEvent
}

// NewPriceList creates a new, inactive price list (for creation).
func NewPriceList(p PriceListParams, now time.Time) (*PriceList, error) {
	pl, err := buildPriceList(p)
	if err != nil {
		return nil, err
	}

	pl.createdAt = now
	pl.updatedAt = now

	pl.recordEvent(&PriceListCreatedEvent{
		PriceListID:   pl.id,
		VehicleID:     pl.vehicleID,
		RenterID:      pl.renterID,
		Currency:      pl.currency.Code(),
		BaseDailyRate: pl.baseDailyRate,
		SeasonCount:   len(pl.seasons),
		TierCount:     len(pl.tiers),
		CreatedAt:     now,
	})

	return pl, nil
}

// ReconstructPriceList reconstitutes a PriceList from storage (for loading existing price lists).
func ReconstructPriceList(p PriceListParams, active bool, publishedAt *time.Time, createdAt, updatedAt time.Time) (*PriceList, error) {
	pl, err := buildPriceList(p)
	if err != nil {
		return nil, err
	}
	pl.active = active
	pl.publishedAt = publishedAt
	pl.createdAt = createdAt
	pl.updatedAt = updatedAt
	return pl, nil
}

func buildPriceList(p PriceListParams) (*PriceList, error) {
	if p.VehicleID == "" {
		return nil, ErrMissingVehicle
	}
	if p.RenterID == "" {
		return nil, ErrMissingRenter
	}

	cur, err := ParseCurrency(p.Currency)
	if err != nil {
		return nil, err
	}

	rounding, err := ParseRoundingMode(string(p.Rounding))
	if err != nil {
		return nil, err
	}

	if p.BaseDailyRate < 0 {
		return nil, fmt.Errorf("base daily rate: %w", ErrNegativeAmount)
	}
	if p.Deposit < 0 {
		return nil, fmt.Errorf("deposit: %w", ErrNegativeAmount)
	}
	if p.SecondDriverDailyFee < 0 {
		return nil, fmt.Errorf("second driver fee: %w", ErrNegativeAmount)
	}
	if p.KmIncludedPerDay != nil && *p.KmIncludedPerDay < 0 {
		return nil, fmt.Errorf("included kilometres: %w", ErrNegativeAmount)
	}
	if p.ExtraKmRate != nil && *p.ExtraKmRate < 0 {
		return nil, fmt.Errorf("extra kilometre rate: %w", ErrNegativeAmount)
	}
	if p.WeekendSurchargePct.IsNegative() {
		return nil, fmt.Errorf("weekend surcharge: %w", ErrInvalidPercent)
	}

	seasons := make([]Season, len(p.Seasons))
	for i := range p.Seasons {
		if err := p.Seasons[i].Validate(); err != nil {
			return nil, err
		}
		seasons[i] = p.Seasons[i]
	}

	tiers := make([]DurationTier, len(p.Tiers))
	for i := range p.Tiers {
		if err := p.Tiers[i].Validate(); err != nil {
			return nil, err
		}
		tiers[i] = p.Tiers[i]
	}

	return &PriceList{
		id:                   p.ID,
		vehicleID:            p.VehicleID,
		renterID:             p.RenterID,
		currency:             cur,
		baseDailyRate:        p.BaseDailyRate,
		weekendSurchargePct:  p.WeekendSurchargePct,
		kmIncludedPerDay:     copyInt64(p.KmIncludedPerDay),
		extraKmRate:          copyInt64(p.ExtraKmRate),
		deposit:              p.Deposit,
		rounding:             rounding,
		secondDriverDailyFee: p.SecondDriverDailyFee,
		seasons:              seasons,
		tiers:                tiers,
		changes:              NewChangeTracker(),
		events:               make([]DomainEvent, 0),
	}, nil
}

// Getters
func (pl *PriceList) ID() string                   { return pl.id }
func (pl *PriceList) VehicleID() string            { return pl.vehicleID }
func (pl *PriceList) RenterID() string             { return pl.renterID }
func (pl *PriceList) Currency() Currency           { return pl.currency }
func (pl *PriceList) BaseDailyRate() int64         { return pl.baseDailyRate }
func (pl *PriceList) WeekendSurchargePct() Percent { return pl.weekendSurchargePct }
func (pl *PriceList) KmIncludedPerDay() *int64     { return copyInt64(pl.kmIncludedPerDay) }
func (pl *PriceList) ExtraKmRate() *int64          { return copyInt64(pl.extraKmRate) }
func (pl *PriceList) Deposit() int64               { return pl.deposit }
func (pl *PriceList) Rounding() RoundingMode       { return pl.rounding }
func (pl *PriceList) SecondDriverDailyFee() int64  { return pl.secondDriverDailyFee }
func (pl *PriceList) IsActive() bool               { return pl.active }
func (pl *PriceList) PublishedAt() *time.Time      { return pl.publishedAt }
func (pl *PriceList) CreatedAt() time.Time         { return pl.createdAt }
func (pl *PriceList) UpdatedAt() time.Time         { return pl.updatedAt }
func (pl *PriceList) Changes() *ChangeTracker      { return pl.changes }
func (pl *PriceList) DomainEvents() []DomainEvent  { return pl.events }

// Seasons returns a copy of the configured seasons.
func (pl *PriceList) Seasons() []Season {
	out := make([]Season, len(pl.seasons))
	copy(out, pl.seasons)
	return out
}

// Tiers returns a copy of the configured duration tiers.
func (pl *PriceList) Tiers() []DurationTier {
	out := make([]DurationTier, len(pl.tiers))
	copy(out, pl.tiers)
	return out
}

// Params returns the configurable part of the price list.
func (pl *PriceList) Params() PriceListParams {
	return PriceListParams{
		ID:                   pl.id,
		VehicleID:            pl.vehicleID,
		RenterID:             pl.renterID,
		Currency:             pl.currency.Code(),
		BaseDailyRate:        pl.baseDailyRate,
		WeekendSurchargePct:  pl.weekendSurchargePct,
		KmIncludedPerDay:     copyInt64(pl.kmIncludedPerDay),
		ExtraKmRate:          copyInt64(pl.extraKmRate),
		Deposit:              pl.deposit,
		Rounding:             pl.rounding,
		SecondDriverDailyFee: pl.secondDriverDailyFee,
		Seasons:              pl.Seasons(),
		Tiers:                pl.Tiers(),
	}
}

// Activate publishes the price list. Deactivating the previously active list for the same
// (vehicle, renter) pair is the caller's job and must happen in the same transaction.
func (pl *PriceList) Activate(now time.Time) error {
	if pl.active {
		return ErrPriceListAlreadyActive
	}

	pl.active = true
	published := now
	pl.publishedAt = &published
	pl.updatedAt = now
	pl.changes.MarkDirty(FieldActive)
	pl.changes.MarkDirty(FieldPublishedAt)

	pl.recordEvent(&PriceListActivatedEvent{
		PriceListID: pl.id,
		VehicleID:   pl.vehicleID,
		RenterID:    pl.renterID,
		PublishedAt: now,
	})

	return nil
}

// Deactivate retires the price list.
func (pl *PriceList) Deactivate(now time.Time) error {
	if !pl.active {
		return ErrPriceListInactive
	}

	pl.active = false
	pl.updatedAt = now
	pl.changes.MarkDirty(FieldActive)

	pl.recordEvent(&PriceListDeactivatedEvent{
		PriceListID: pl.id,
		VehicleID:   pl.vehicleID,
		RenterID:    pl.renterID,
		Timestamp:   now,
	})

	return nil
}

func (pl *PriceList) recordEvent(event DomainEvent) {
	pl.events = append(pl.events, event)
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
