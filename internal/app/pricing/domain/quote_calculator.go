package domain

import (
	"fmt"
	"time"
)

// DefaultMaxRentalDays bounds a single quote to one leap year of days.
const DefaultMaxRentalDays = 366

const secondsPerDay = 24 * 60 * 60

// QuoteCalculator is a domain service that turns a price list and a rental window into a Quote.
//
// It holds no mutable state: every call works only on its arguments, so one instance can be
// shared by any number of concurrent requests. Persistence never happens here; freezing a
// quote is the snapshot use case's job.
type QuoteCalculator struct {
	maxDays int
}

// NewQuoteCalculator creates a QuoteCalculator that accepts rentals of up to DefaultMaxRentalDays.
func NewQuoteCalculator() *QuoteCalculator {
	return &QuoteCalculator{maxDays: DefaultMaxRentalDays}
}

// WithMaxRentalDays returns a copy of the calculator with a different day limit.
// Non-positive values keep the default.
func (qc *QuoteCalculator) WithMaxRentalDays(maxDays int) *QuoteCalculator {
	if maxDays <= 0 {
		maxDays = DefaultMaxRentalDays
	}
	return &QuoteCalculator{maxDays: maxDays}
}

// MaxRentalDays is the longest rental the calculator prices.
func (qc *QuoteCalculator) MaxRentalDays() int {
	return qc.maxDays
}

// Quote computes the full pricing breakdown:
//
//	days -> per-day rates -> subtotal -> tier adjustment -> km overage -> rounding -> total
//
// The deposit and the second driver fee are attached unchanged.
func (qc *QuoteCalculator) Quote(pl *PriceList, pickupAt, dropoffAt time.Time, expectedKm int64) (*Quote, error) {
	if pl == nil {
		return nil, ErrNoActivePriceList
	}
	if expectedKm < 0 {
		return nil, ErrNegativeKilometres
	}

	days, err := RentalDays(pickupAt, dropoffAt)
	if err != nil {
		return nil, err
	}
	if days > qc.maxDays {
		return nil, fmt.Errorf("%w: %d days exceeds the %d day maximum", ErrInvalidWindow, days, qc.maxDays)
	}

	q := &Quote{
		priceListID:          pl.id,
		currency:             pl.currency,
		pickupAt:             pickupAt,
		dropoffAt:            dropoffAt,
		days:                 days,
		breakdown:            make([]DayRate, 0, days),
		expectedKm:           expectedKm,
		rounding:             pl.rounding,
		deposit:              pl.deposit,
		secondDriverDailyFee: pl.secondDriverDailyFee,
	}

	// 1. Day-by-day rates
	first := civilDate(pickupAt)
	for i := 0; i < days; i++ {
		day, err := DailyRate(pl, first.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		if q.subtotalBeforeTier, err = addAmounts(q.subtotalBeforeTier, day.Rate); err != nil {
			return nil, err
		}
		day.RunningTotal = q.subtotalBeforeTier
		q.breakdown = append(q.breakdown, day)
	}

	// 2. Duration tier
	if tier := SelectTier(pl, days); tier != nil {
		q.tierName = tier.Name
		if q.tierAdjustment, err = tier.Adjustment(q.subtotalBeforeTier, days); err != nil {
			return nil, err
		}
	}
	if q.subtotalAfterTier, err = addAmounts(q.subtotalBeforeTier, q.tierAdjustment); err != nil {
		return nil, err
	}

	// A discount can never push the rental below zero.
	if q.subtotalAfterTier < 0 {
		q.tierAdjustment = -q.subtotalBeforeTier
		q.subtotalAfterTier = 0
		q.clamped = true
	}

	// 3. Kilometres
	if pl.kmIncludedPerDay != nil {
		if q.includedKm, err = mulAmount(*pl.kmIncludedPerDay, int64(days)); err != nil {
			return nil, err
		}
	}
	if expectedKm > q.includedKm {
		q.excessKm = expectedKm - q.includedKm
	}
	if pl.extraKmRate != nil {
		if q.kmOverageCost, err = mulAmount(q.excessKm, *pl.extraKmRate); err != nil {
			return nil, err
		}
	}
	if q.preRoundingTotal, err = addAmounts(q.subtotalAfterTier, q.kmOverageCost); err != nil {
		return nil, err
	}
	if q.preRoundingTotal < 0 {
		q.preRoundingTotal = 0
		q.clamped = true
	}

	// 4. Rounding, never downward
	if q.roundingDelta, err = pl.rounding.Delta(q.preRoundingTotal, pl.currency); err != nil {
		return nil, err
	}
	if q.total, err = addAmounts(q.preRoundingTotal, q.roundingDelta); err != nil {
		return nil, err
	}

	return q, nil
}

// RentalDays counts billable days: every calendar date from the pickup date up to the day
// before the dropoff date, plus one more when the dropoff time of day is later than the
// pickup time of day. The result is at least 1. Dropoff is read in pickup's location.
func RentalDays(pickupAt, dropoffAt time.Time) (int, error) {
	if !dropoffAt.After(pickupAt) {
		return 0, ErrInvalidWindow
	}
	dropoffAt = dropoffAt.In(pickupAt.Location())

	days := dayNumber(dropoffAt) - dayNumber(pickupAt)
	if timeOfDay(dropoffAt) > timeOfDay(pickupAt) {
		days++
	}
	if days < 1 {
		days = 1
	}
	if int64(int(days)) != days {
		return 0, fmt.Errorf("%w: %d days", ErrInvalidWindow, days)
	}
	return int(days), nil
}

// dayNumber is the count of days from the Unix epoch to t's calendar date.
// It goes through Unix seconds rather than time.Duration, which saturates after ~292 years.
func dayNumber(t time.Time) int64 {
	return civilDate(t).Unix() / secondsPerDay
}

// civilDate maps t to midnight UTC of its own calendar date, so day arithmetic is immune to DST.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}
