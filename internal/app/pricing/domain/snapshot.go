package domain

import (
	"strings"
	"time"
)

// FreezeOutcome is the result of trying to freeze a rental's contract price.
type FreezeOutcome string

const (
	// FreezeCreated means this call stored the snapshot.
	FreezeCreated FreezeOutcome = "created"
	// FreezeAlreadyFrozen means a snapshot existed (or a concurrent writer won); nothing was written.
	FreezeAlreadyFrozen FreezeOutcome = "already_frozen"
)

// SnapshotParams holds the fields of a ContractPriceSnapshot.
type SnapshotParams struct {
	RentalID             string
	PriceListID          string // empty when the source list is unknown
	Currency             string
	Days                 int
	TariffTotal          int64
	KmIncludedPerDay     *int64
	ExtraKmRate          *int64
	Deposit              int64
	SecondDriverDailyFee int64
	CreatedBy            string
	CreatedAt            time.Time
}

// ContractPriceSnapshot is the permanently frozen price of one rental's contract.
// Once stored it is never updated or deleted; later contract generations read it verbatim.
type ContractPriceSnapshot struct {
	rentalID             string
	priceListID          string
	currency             string
	days                 int
	tariffTotal          int64
	kmIncludedPerDay     *int64
	extraKmRate          *int64
	deposit              int64
	secondDriverDailyFee int64
	createdBy            string
	createdAt            time.Time
}

// NewSnapshotFromQuote freezes a quote's numbers for a rental.
func NewSnapshotFromQuote(rentalID string, pl *PriceList, q *Quote, createdBy string, now time.Time) (*ContractPriceSnapshot, error) {
	if strings.TrimSpace(rentalID) == "" {
		return nil, ErrEmptyRentalID
	}
	if strings.TrimSpace(createdBy) == "" {
		return nil, ErrMissingCreator
	}
	if pl == nil || q == nil {
		return nil, ErrNoActivePriceList
	}

	return &ContractPriceSnapshot{
		rentalID:             rentalID,
		priceListID:          pl.ID(),
		currency:             q.Currency().Code(),
		days:                 q.Days(),
		tariffTotal:          q.Total(),
		kmIncludedPerDay:     pl.KmIncludedPerDay(),
		extraKmRate:          pl.ExtraKmRate(),
		deposit:              q.Deposit(),
		secondDriverDailyFee: q.SecondDriverDailyFee(),
		createdBy:            createdBy,
		createdAt:            now,
	}, nil
}

// ReconstructSnapshot reconstitutes a snapshot from storage.
func ReconstructSnapshot(p SnapshotParams) *ContractPriceSnapshot {
	return &ContractPriceSnapshot{
		rentalID:             p.RentalID,
		priceListID:          p.PriceListID,
		currency:             p.Currency,
		days:                 p.Days,
		tariffTotal:          p.TariffTotal,
		kmIncludedPerDay:     copyInt64(p.KmIncludedPerDay),
		extraKmRate:          copyInt64(p.ExtraKmRate),
		deposit:              p.Deposit,
		secondDriverDailyFee: p.SecondDriverDailyFee,
		createdBy:            p.CreatedBy,
		createdAt:            p.CreatedAt,
	}
}

// Getters
func (s *ContractPriceSnapshot) RentalID() string            { return s.rentalID }
func (s *ContractPriceSnapshot) PriceListID() string         { return s.priceListID }
func (s *ContractPriceSnapshot) Currency() string            { return s.currency }
func (s *ContractPriceSnapshot) Days() int                   { return s.days }
func (s *ContractPriceSnapshot) TariffTotal() int64          { return s.tariffTotal }
func (s *ContractPriceSnapshot) KmIncludedPerDay() *int64    { return copyInt64(s.kmIncludedPerDay) }
func (s *ContractPriceSnapshot) ExtraKmRate() *int64         { return copyInt64(s.extraKmRate) }
func (s *ContractPriceSnapshot) Deposit() int64              { return s.deposit }
func (s *ContractPriceSnapshot) SecondDriverDailyFee() int64 { return s.secondDriverDailyFee }
func (s *ContractPriceSnapshot) CreatedBy() string           { return s.createdBy }
func (s *ContractPriceSnapshot) CreatedAt() time.Time        { return s.createdAt }

// Params returns the snapshot's fields.
func (s *ContractPriceSnapshot) Params() SnapshotParams {
	return SnapshotParams{
		RentalID:             s.rentalID,
		PriceListID:          s.priceListID,
		Currency:             s.currency,
		Days:                 s.days,
		TariffTotal:          s.tariffTotal,
		KmIncludedPerDay:     copyInt64(s.kmIncludedPerDay),
		ExtraKmRate:          copyInt64(s.extraKmRate),
		Deposit:              s.deposit,
		SecondDriverDailyFee: s.secondDriverDailyFee,
		CreatedBy:            s.createdBy,
		CreatedAt:            s.createdAt,
	}
}

// FrozenEvent builds the event announcing this snapshot.
func (s *ContractPriceSnapshot) FrozenEvent() *ContractSnapshotFrozenEvent {
	return &ContractSnapshotFrozenEvent{
		RentalID:    s.rentalID,
		PriceListID: s.priceListID,
		Currency:    s.currency,
		Days:        s.days,
		TariffTotal: s.tariffTotal,
		Deposit:     s.deposit,
		CreatedBy:   s.createdBy,
		FrozenAt:    s.createdAt,
	}
}
