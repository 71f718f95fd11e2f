package domain

import "time"

// Quote is the computed, non-persisted pricing breakdown for a prospective rental.
// It is immutable once built: all fields are unexported and the breakdown getter copies.
type Quote struct {
	priceListID          string
	currency             Currency
	pickupAt             time.Time
	dropoffAt            time.Time
	days                 int
	breakdown            []DayRate
	subtotalBeforeTier   int64
	tierName             string
	tierAdjustment       int64
	subtotalAfterTier    int64
	clamped              bool
	expectedKm           int64
	includedKm           int64
	excessKm             int64
	kmOverageCost        int64
	preRoundingTotal     int64
	rounding             RoundingMode
	roundingDelta        int64
	total                int64
	deposit              int64
	secondDriverDailyFee int64
}

// Getters
func (q *Quote) PriceListID() string         { return q.priceListID }
func (q *Quote) Currency() Currency          { return q.currency }
func (q *Quote) PickupAt() time.Time         { return q.pickupAt }
func (q *Quote) DropoffAt() time.Time        { return q.dropoffAt }
func (q *Quote) Days() int                   { return q.days }
func (q *Quote) SubtotalBeforeTier() int64   { return q.subtotalBeforeTier }
func (q *Quote) TierName() string            { return q.tierName }
func (q *Quote) TierAdjustment() int64       { return q.tierAdjustment }
func (q *Quote) SubtotalAfterTier() int64    { return q.subtotalAfterTier }
func (q *Quote) Clamped() bool               { return q.clamped }
func (q *Quote) ExpectedKm() int64           { return q.expectedKm }
func (q *Quote) IncludedKm() int64           { return q.includedKm }
func (q *Quote) ExcessKm() int64             { return q.excessKm }
func (q *Quote) KmOverageCost() int64        { return q.kmOverageCost }
func (q *Quote) PreRoundingTotal() int64     { return q.preRoundingTotal }
func (q *Quote) Rounding() RoundingMode      { return q.rounding }
func (q *Quote) RoundingDelta() int64        { return q.roundingDelta }
func (q *Quote) Total() int64                { return q.total }
func (q *Quote) Deposit() int64              { return q.deposit }
func (q *Quote) SecondDriverDailyFee() int64 { return q.secondDriverDailyFee }

// Breakdown returns a copy of the per-day breakdown, one entry per counted day.
func (q *Quote) Breakdown() []DayRate {
	out := make([]DayRate, len(q.breakdown))
	copy(out, q.breakdown)
	return out
}
