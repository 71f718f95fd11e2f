// Package wire holds the JSON shapes shared by the HTTP and gRPC transports.
//
// Money crosses the boundary as integer minor units next to an ISO-4217 code.
// Every int64 is encoded as a decimal string ("3000") and percentages as decimal
// strings ("12.5"), so nothing passes through a JSON or Struct double.
package wire

import (
	"time"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/compute_quote"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/create_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/issue_contract_pricing"
)

// QuoteRequest asks for a quote.
type QuoteRequest struct {
	VehicleID  string    `json:"vehicle_id"`
	RenterID   string    `json:"renter_id"`
	PickupAt   time.Time `json:"pickup_at"`
	DropoffAt  time.Time `json:"dropoff_at"`
	ExpectedKm int64     `json:"expected_km,string"`
}

// ToQuery maps the request to the compute quote query.
func (r *QuoteRequest) ToQuery() *compute_quote.Request {
	return &compute_quote.Request{
		VehicleID:  r.VehicleID,
		RenterID:   r.RenterID,
		PickupAt:   r.PickupAt,
		DropoffAt:  r.DropoffAt,
		ExpectedKm: r.ExpectedKm,
	}
}

// Quote is a priced rental with its per-day breakdown.
type Quote struct {
	PriceListID          string           `json:"price_list_id"`
	Currency             string           `json:"currency"`
	PickupAt             time.Time        `json:"pickup_at"`
	DropoffAt            time.Time        `json:"dropoff_at"`
	Days                 int              `json:"days"`
	SubtotalBeforeTier   int64            `json:"subtotal_before_tier,string"`
	TierName             string           `json:"tier_name,omitempty"`
	TierAdjustment       int64            `json:"tier_adjustment,string"`
	SubtotalAfterTier    int64            `json:"subtotal_after_tier,string"`
	Clamped              bool             `json:"clamped,omitempty"`
	ExpectedKm           int64            `json:"expected_km,string"`
	IncludedKm           int64            `json:"included_km,string"`
	ExcessKm             int64            `json:"excess_km,string"`
	KmOverageCost        int64            `json:"km_overage_cost,string"`
	PreRoundingTotal     int64            `json:"pre_rounding_total,string"`
	Rounding             string           `json:"rounding"`
	RoundingDelta        int64            `json:"rounding_delta,string"`
	Total                int64            `json:"total,string"`
	Deposit              int64            `json:"deposit,string"`
	SecondDriverDailyFee int64            `json:"second_driver_daily_fee,string"`
	Breakdown            []domain.DayRate `json:"breakdown"`
}

// NewQuote renders a domain quote.
func NewQuote(q *domain.Quote) *Quote {
	if q == nil {
		return nil
	}
	return &Quote{
		PriceListID:          q.PriceListID(),
		Currency:             q.Currency().Code(),
		PickupAt:             q.PickupAt(),
		DropoffAt:            q.DropoffAt(),
		Days:                 q.Days(),
		SubtotalBeforeTier:   q.SubtotalBeforeTier(),
		TierName:             q.TierName(),
		TierAdjustment:       q.TierAdjustment(),
		SubtotalAfterTier:    q.SubtotalAfterTier(),
		Clamped:              q.Clamped(),
		ExpectedKm:           q.ExpectedKm(),
		IncludedKm:           q.IncludedKm(),
		ExcessKm:             q.ExcessKm(),
		KmOverageCost:        q.KmOverageCost(),
		PreRoundingTotal:     q.PreRoundingTotal(),
		Rounding:             string(q.Rounding()),
		RoundingDelta:        q.RoundingDelta(),
		Total:                q.Total(),
		Deposit:              q.Deposit(),
		SecondDriverDailyFee: q.SecondDriverDailyFee(),
		Breakdown:            q.Breakdown(),
	}
}

// IssueContractPricingRequest asks for the frozen price of a rental.
type IssueContractPricingRequest struct {
	RentalID   string    `json:"rental_id"`
	VehicleID  string    `json:"vehicle_id"`
	RenterID   string    `json:"renter_id"`
	PickupAt   time.Time `json:"pickup_at"`
	DropoffAt  time.Time `json:"dropoff_at"`
	ExpectedKm int64     `json:"expected_km,string"`
	CreatedBy  string    `json:"created_by"`
}

// ToUseCase maps the request to the issue contract pricing use case.
func (r *IssueContractPricingRequest) ToUseCase() *issue_contract_pricing.Request {
	return &issue_contract_pricing.Request{
		RentalID:   r.RentalID,
		VehicleID:  r.VehicleID,
		RenterID:   r.RenterID,
		PickupAt:   r.PickupAt,
		DropoffAt:  r.DropoffAt,
		ExpectedKm: r.ExpectedKm,
		CreatedBy:  r.CreatedBy,
	}
}

// Snapshot is a frozen contract price.
type Snapshot struct {
	RentalID             string    `json:"rental_id"`
	PriceListID          string    `json:"price_list_id,omitempty"`
	Currency             string    `json:"currency"`
	Days                 int       `json:"days"`
	TariffTotal          int64     `json:"tariff_total,string"`
	KmIncludedPerDay     *int64    `json:"km_included_per_day,omitempty,string"`
	ExtraKmRate          *int64    `json:"extra_km_rate,omitempty,string"`
	Deposit              int64     `json:"deposit,string"`
	SecondDriverDailyFee int64     `json:"second_driver_daily_fee,string"`
	CreatedBy            string    `json:"created_by"`
	CreatedAt            time.Time `json:"created_at"`
}

// NewSnapshot renders a domain snapshot.
func NewSnapshot(s *domain.ContractPriceSnapshot) *Snapshot {
	return &Snapshot{
		RentalID:             s.RentalID(),
		PriceListID:          s.PriceListID(),
		Currency:             s.Currency(),
		Days:                 s.Days(),
		TariffTotal:          s.TariffTotal(),
		KmIncludedPerDay:     s.KmIncludedPerDay(),
		ExtraKmRate:          s.ExtraKmRate(),
		Deposit:              s.Deposit(),
		SecondDriverDailyFee: s.SecondDriverDailyFee(),
		CreatedBy:            s.CreatedBy(),
		CreatedAt:            s.CreatedAt(),
	}
}

// ContractPricing is the answer to a contract pricing request.
type ContractPricing struct {
	Snapshot     *Snapshot `json:"snapshot"`
	Quote        *Quote    `json:"quote,omitempty"`
	FromSnapshot bool      `json:"from_snapshot"`
	Outcome      string    `json:"outcome"`
}

// NewContractPricing renders an issue contract pricing result.
func NewContractPricing(res *issue_contract_pricing.Result) *ContractPricing {
	return &ContractPricing{
		Snapshot:     NewSnapshot(res.Snapshot),
		Quote:        NewQuote(res.Quote),
		FromSnapshot: res.FromSnapshot,
		Outcome:      string(res.Outcome),
	}
}

// SnapshotPage is one page of snapshots.
type SnapshotPage struct {
	Snapshots  []*Snapshot `json:"snapshots"`
	NextBefore *time.Time  `json:"next_before,omitempty"`
}

// NewSnapshotPage renders a snapshot page.
func NewSnapshotPage(page *contracts.SnapshotPage) *SnapshotPage {
	out := &SnapshotPage{
		Snapshots:  make([]*Snapshot, 0, len(page.Snapshots)),
		NextBefore: page.NextBefore,
	}
	for _, s := range page.Snapshots {
		out.Snapshots = append(out.Snapshots, NewSnapshot(s))
	}
	return out
}

// CreatePriceListRequest describes a new price list.
type CreatePriceListRequest struct {
	VehicleID            string                `json:"vehicle_id"`
	RenterID             string                `json:"renter_id"`
	Currency             string                `json:"currency"`
	BaseDailyRate        int64                 `json:"base_daily_rate,string"`
	WeekendSurchargePct  domain.Percent        `json:"weekend_surcharge_pct"`
	KmIncludedPerDay     *int64                `json:"km_included_per_day,omitempty,string"`
	ExtraKmRate          *int64                `json:"extra_km_rate,omitempty,string"`
	Deposit              int64                 `json:"deposit,string"`
	Rounding             string                `json:"rounding"`
	SecondDriverDailyFee int64                 `json:"second_driver_daily_fee,string"`
	Seasons              []domain.Season       `json:"seasons,omitempty"`
	Tiers                []domain.DurationTier `json:"tiers,omitempty"`
}

// ToUseCase maps the request to the create price list use case.
func (r *CreatePriceListRequest) ToUseCase() *create_price_list.Request {
	return &create_price_list.Request{
		VehicleID:            r.VehicleID,
		RenterID:             r.RenterID,
		Currency:             r.Currency,
		BaseDailyRate:        r.BaseDailyRate,
		WeekendSurchargePct:  r.WeekendSurchargePct,
		KmIncludedPerDay:     r.KmIncludedPerDay,
		ExtraKmRate:          r.ExtraKmRate,
		Deposit:              r.Deposit,
		Rounding:             domain.RoundingMode(r.Rounding),
		SecondDriverDailyFee: r.SecondDriverDailyFee,
		Seasons:              r.Seasons,
		Tiers:                r.Tiers,
	}
}

// CreatedPriceList is the answer to a create price list request.
type CreatedPriceList struct {
	PriceListID string `json:"price_list_id"`
}

// ActivatePriceListRequest names the price list to activate.
type ActivatePriceListRequest struct {
	PriceListID string `json:"price_list_id"`
}

// PriceList is a stored price list.
type PriceList struct {
	domain.PriceListParams
	Active      bool       `json:"active"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewPriceList renders a domain price list.
func NewPriceList(pl *domain.PriceList) *PriceList {
	return &PriceList{
		PriceListParams: pl.Params(),
		Active:          pl.IsActive(),
		PublishedAt:     pl.PublishedAt(),
		CreatedAt:       pl.CreatedAt(),
		UpdatedAt:       pl.UpdatedAt(),
	}
}

// ListEventsRequest filters outbox events.
type ListEventsRequest struct {
	EventType     string `json:"event_type,omitempty"`
	AggregateType string `json:"aggregate_type,omitempty"`
	AggregateID   string `json:"aggregate_id,omitempty"`
	Status        string `json:"status,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

// Event is an outbox event.
type Event struct {
	EventID       string     `json:"event_id"`
	EventType     string     `json:"event_type"`
	AggregateType string     `json:"aggregate_type"`
	AggregateID   string     `json:"aggregate_id"`
	Payload       string     `json:"payload"`
	Status        string     `json:"status"`
	RetryCount    int64      `json:"retry_count,string"`
	LastError     string     `json:"last_error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

// EventList is a list of outbox events.
type EventList struct {
	Events     []Event `json:"events"`
	TotalCount int64   `json:"total_count,string"`
}

// NewEventList renders outbox events.
func NewEventList(events []*contracts.EventDTO) *EventList {
	out := &EventList{Events: make([]Event, 0, len(events)), TotalCount: int64(len(events))}
	for _, e := range events {
		out.Events = append(out.Events, Event{
			EventID:       e.EventID,
			EventType:     e.EventType,
			AggregateType: e.AggregateType,
			AggregateID:   e.AggregateID,
			Payload:       e.Payload,
			Status:        e.Status,
			RetryCount:    e.RetryCount,
			LastError:     e.LastError,
			CreatedAt:     e.CreatedAt,
			ProcessedAt:   e.ProcessedAt,
		})
	}
	return out
}
