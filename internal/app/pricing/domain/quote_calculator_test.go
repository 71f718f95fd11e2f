package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPriceList returns an EUR list with a 30.00 base rate, 100 km/day included and
// 0.20 per extra km; mutate tweaks it before validation.
func newTestPriceList(t *testing.T, mutate func(p *PriceListParams)) *PriceList {
	t.Helper()
	p := PriceListParams{
		ID:               "pl-1",
		VehicleID:        "vehicle-1",
		RenterID:         "renter-1",
		Currency:         "EUR",
		BaseDailyRate:    3000,
		KmIncludedPerDay: int64Ptr(100),
		ExtraKmRate:      int64Ptr(20),
		Deposit:          50000,
		Rounding:         RoundingNone,
	}
	if mutate != nil {
		mutate(&p)
	}
	pl, err := NewPriceList(p, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return pl
}

func at(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

func TestQuoteCalculator_ScenarioA_KmOverage(t *testing.T) {
	pl := newTestPriceList(t, nil)
	qc := NewQuoteCalculator()

	// Monday 10:00 to Wednesday 10:00
	q, err := qc.Quote(pl, at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 0), 250)
	require.NoError(t, err)

	assert.Equal(t, 2, q.Days())
	assert.Equal(t, int64(6000), q.SubtotalBeforeTier())
	assert.Equal(t, int64(6000), q.SubtotalAfterTier())
	assert.Equal(t, int64(200), q.IncludedKm())
	assert.Equal(t, int64(50), q.ExcessKm())
	assert.Equal(t, int64(1000), q.KmOverageCost())
	assert.Equal(t, int64(7000), q.PreRoundingTotal())
	assert.Equal(t, int64(0), q.RoundingDelta())
	assert.Equal(t, int64(7000), q.Total())
	assert.Equal(t, int64(50000), q.Deposit())
	assert.Equal(t, "EUR", q.Currency().Code())
	assert.Equal(t, "pl-1", q.PriceListID())
	assert.False(t, q.Clamped())
}

func TestQuoteCalculator_ScenarioB_Weekend(t *testing.T) {
	pl := newTestPriceList(t, func(p *PriceListParams) {
		p.WeekendSurchargePct = PercentOf(20)
	})
	qc := NewQuoteCalculator()

	// Saturday 10:00 to Monday 10:00: Saturday and Sunday
	q, err := qc.Quote(pl, at(2024, 6, 1, 10, 0), at(2024, 6, 3, 10, 0), 0)
	require.NoError(t, err)

	require.Len(t, q.Breakdown(), 2)
	for _, day := range q.Breakdown() {
		assert.True(t, day.Weekend)
		assert.Equal(t, WeekendFromPriceList, day.WeekendSource)
		assert.Equal(t, int64(600), day.WeekendAdd)
		assert.Equal(t, int64(3600), day.Rate)
	}
	assert.Equal(t, int64(7200), q.SubtotalBeforeTier())
	assert.Equal(t, int64(7200), q.Total())
}

func TestQuoteCalculator_ScenarioC_DurationDiscount(t *testing.T) {
	pl := newTestPriceList(t, func(p *PriceListParams) {
		p.Tiers = []DurationTier{{Name: "week", MinDays: 7, DiscountPct: pctPtr(10), Active: true}}
	})
	qc := NewQuoteCalculator()

	q, err := qc.Quote(pl, at(2024, 6, 3, 9, 0), at(2024, 6, 10, 9, 0), 0)
	require.NoError(t, err)

	assert.Equal(t, 7, q.Days())
	assert.Equal(t, int64(21000), q.SubtotalBeforeTier())
	assert.Equal(t, "week", q.TierName())
	assert.Equal(t, int64(-2100), q.TierAdjustment())
	assert.Equal(t, int64(18900), q.SubtotalAfterTier())
	assert.Equal(t, int64(18900), q.Total())
}

func TestQuoteCalculator_TierOverride(t *testing.T) {
	pl := newTestPriceList(t, func(p *PriceListParams) {
		p.WeekendSurchargePct = PercentOf(20)
		p.Tiers = []DurationTier{{Name: "long", MinDays: 7, OverrideDailyRate: int64Ptr(2500), Active: true}}
	})

	q, err := NewQuoteCalculator().Quote(pl, at(2024, 6, 3, 9, 0), at(2024, 6, 10, 9, 0), 0)
	require.NoError(t, err)

	// Mon..Sun with one weekend pair: 5*3000 + 2*3600
	assert.Equal(t, int64(22200), q.SubtotalBeforeTier())
	assert.Equal(t, int64(7*2500), q.SubtotalAfterTier())
	assert.Equal(t, int64(7*2500-22200), q.TierAdjustment())
}

func TestQuoteCalculator_SeasonWeekendStacking(t *testing.T) {
	weekend := PercentOf(10)
	pl := newTestPriceList(t, func(p *PriceListParams) {
		p.WeekendSurchargePct = PercentOf(20)
		p.Seasons = []Season{{
			Name:                "summer",
			Range:               SeasonRange{Start: MonthDay{Month: time.June, Day: 1}, End: MonthDay{Month: time.August, Day: 31}},
			SurchargePct:        PercentOf(50),
			WeekendSurchargePct: &weekend,
			Active:              true,
		}}
	})

	// Friday May 31 to Sunday June 2 evening: Fri (no season), Sat, Sun (season)
	q, err := NewQuoteCalculator().Quote(pl, at(2024, 5, 31, 10, 0), at(2024, 6, 2, 18, 0), 0)
	require.NoError(t, err)
	require.Equal(t, 3, q.Days())

	days := q.Breakdown()
	assert.Equal(t, int64(3000), days[0].Rate)
	assert.Empty(t, days[0].SeasonName)
	for _, day := range days[1:] {
		assert.Equal(t, "summer", day.SeasonName)
		assert.Equal(t, WeekendFromSeason, day.WeekendSource)
		assert.Equal(t, int64(1500), day.SeasonAdd)
		assert.Equal(t, int64(300), day.SeasonWeekendAdd)
		assert.Equal(t, int64(0), day.WeekendAdd)
		assert.Equal(t, int64(4800), day.Rate)
	}
	assert.Equal(t, int64(12600), q.SubtotalBeforeTier())
}

func TestQuoteCalculator_BreakdownSumsToSubtotal(t *testing.T) {
	weekend := PercentOf(15)
	pl := newTestPriceList(t, func(p *PriceListParams) {
		p.WeekendSurchargePct = PercentOf(20)
		p.Seasons = []Season{
			{Name: "winter", Range: SeasonRange{Start: MonthDay{Month: 12, Day: 15}, End: MonthDay{Month: 1, Day: 10}}, SurchargePct: PercentOf(30), Active: true},
			{Name: "holidays", Range: SeasonRange{Start: MonthDay{Month: 12, Day: 24}, End: MonthDay{Month: 12, Day: 26}}, SurchargePct: PercentOf(80), WeekendSurchargePct: &weekend, Priority: 10, Active: true},
		}
	})

	q, err := NewQuoteCalculator().Quote(pl, at(2024, 12, 10, 8, 0), at(2025, 1, 14, 8, 0), 0)
	require.NoError(t, err)
	require.Len(t, q.Breakdown(), q.Days())

	var sum int64
	for i, day := range q.Breakdown() {
		assert.Equal(t, day.Base+day.WeekendAdd+day.SeasonAdd+day.SeasonWeekendAdd, day.Rate)
		assert.False(t, day.WeekendAdd != 0 && day.SeasonWeekendAdd != 0, "weekend terms never stack")
		sum += day.Rate
		assert.Equal(t, sum, day.RunningTotal, "day %d", i)
	}
	assert.Equal(t, q.SubtotalBeforeTier(), sum)

	assert.Equal(t, "holidays", q.Breakdown()[14].SeasonName) // Dec 24
	assert.Equal(t, "winter", q.Breakdown()[5].SeasonName)    // Dec 15
	assert.Empty(t, q.Breakdown()[0].SeasonName)              // Dec 10
}

func TestQuoteCalculator_Rounding(t *testing.T) {
	tests := []struct {
		name      string
		currency  string
		mode      RoundingMode
		km        int64
		kmRate    int64
		wantTotal int64
	}{
		{"none keeps cents", "EUR", RoundingNone, 201, 20, 6020},
		{"up to one euro", "EUR", RoundingUpToOne, 201, 20, 6100},
		{"up to five euro", "EUR", RoundingUpToFive, 201, 20, 6500},
		{"already a multiple", "EUR", RoundingUpToFive, 0, 20, 6000},
		{"zero-decimal currency", "JPY", RoundingUpToFive, 201, 7, 6010},
		{"zero-decimal up to one", "JPY", RoundingUpToOne, 201, 7, 6007},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := newTestPriceList(t, func(p *PriceListParams) {
				p.Currency = tt.currency
				p.Rounding = tt.mode
				p.ExtraKmRate = int64Ptr(tt.kmRate)
			})
			q, err := NewQuoteCalculator().Quote(pl, at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 0), tt.km)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, q.Total())
			assert.GreaterOrEqual(t, q.Total(), q.PreRoundingTotal())
			assert.Less(t, q.RoundingDelta(), tt.mode.Step(q.Currency()))
		})
	}
}

func TestQuoteCalculator_ClampsNegativeSubtotal(t *testing.T) {
	pl := newTestPriceList(t, nil)
	// Bypass validation to simulate a misconfigured stored tier.
	pl.tiers = []DurationTier{{Name: "broken", MinDays: 1, DiscountPct: pctPtr(150), Active: true}}

	q, err := NewQuoteCalculator().Quote(pl, at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 0), 0)
	require.NoError(t, err)
	assert.True(t, q.Clamped())
	assert.Equal(t, int64(0), q.SubtotalAfterTier())
	assert.Equal(t, int64(-6000), q.TierAdjustment())
	assert.Equal(t, int64(0), q.Total())
}

func TestQuoteCalculator_Kilometres(t *testing.T) {
	t.Run("within allowance", func(t *testing.T) {
		q, err := NewQuoteCalculator().Quote(newTestPriceList(t, nil), at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 0), 150)
		require.NoError(t, err)
		assert.Equal(t, int64(0), q.ExcessKm())
		assert.Equal(t, int64(0), q.KmOverageCost())
	})

	t.Run("no allowance configured", func(t *testing.T) {
		pl := newTestPriceList(t, func(p *PriceListParams) { p.KmIncludedPerDay = nil })
		q, err := NewQuoteCalculator().Quote(pl, at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 0), 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), q.ExcessKm())
		assert.Equal(t, int64(200), q.KmOverageCost())
	})

	t.Run("no extra km rate configured", func(t *testing.T) {
		pl := newTestPriceList(t, func(p *PriceListParams) { p.ExtraKmRate = nil })
		q, err := NewQuoteCalculator().Quote(pl, at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 0), 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(800), q.ExcessKm())
		assert.Equal(t, int64(0), q.KmOverageCost())
	})

	t.Run("negative kilometres rejected", func(t *testing.T) {
		_, err := NewQuoteCalculator().Quote(newTestPriceList(t, nil), at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 0), -1)
		assert.ErrorIs(t, err, ErrNegativeKilometres)
	})
}

func TestQuoteCalculator_Errors(t *testing.T) {
	qc := NewQuoteCalculator()

	_, err := qc.Quote(nil, at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 0), 0)
	assert.ErrorIs(t, err, ErrNoActivePriceList)

	_, err = qc.Quote(newTestPriceList(t, nil), at(2024, 6, 5, 10, 0), at(2024, 6, 3, 10, 0), 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestQuoteCalculator_Deterministic(t *testing.T) {
	pl := newTestPriceList(t, func(p *PriceListParams) { p.WeekendSurchargePct = PercentOf(20) })
	qc := NewQuoteCalculator()

	first, err := qc.Quote(pl, at(2024, 6, 1, 10, 0), at(2024, 6, 9, 12, 0), 1234)
	require.NoError(t, err)
	second, err := qc.Quote(pl, at(2024, 6, 1, 10, 0), at(2024, 6, 9, 12, 0), 1234)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRentalDays(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name    string
		pickup  time.Time
		dropoff time.Time
		want    int
	}{
		{"exact two days", at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 0), 2},
		{"one hour same day", at(2024, 6, 3, 10, 0), at(2024, 6, 3, 11, 0), 1},
		{"earlier time next day", at(2024, 6, 3, 10, 0), at(2024, 6, 4, 9, 0), 1},
		{"later time next day", at(2024, 6, 3, 10, 0), at(2024, 6, 4, 11, 0), 2},
		{"one minute late", at(2024, 6, 3, 10, 0), at(2024, 6, 5, 10, 1), 3},
		{"across month end", at(2024, 2, 28, 12, 0), at(2024, 3, 1, 12, 0), 2},
		{
			"dropoff read in pickup zone",
			time.Date(2024, 6, 3, 1, 0, 0, 0, plus2),
			at(2024, 6, 3, 23, 30), // 2024-06-04 01:30 at UTC+2
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RentalDays(tt.pickup, tt.dropoff)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("dropoff equal to pickup", func(t *testing.T) {
		_, err := RentalDays(at(2024, 6, 3, 10, 0), at(2024, 6, 3, 10, 0))
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("dropoff before pickup", func(t *testing.T) {
		_, err := RentalDays(at(2024, 6, 3, 10, 0), at(2024, 6, 2, 10, 0))
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestRentalDays_CenturiesApart(t *testing.T) {
	// Far beyond the ~292 years a time.Duration can hold.
	got, err := RentalDays(at(1, 1, 1, 0, 0), at(9999, 12, 31, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 3652058, got)

	got, err = RentalDays(at(1700, 3, 1, 9, 0), at(2100, 3, 1, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, 146097+1, got) // 400 Gregorian years plus the partial day
}

func TestQuoteCalculator_RejectsOverlongRental(t *testing.T) {
	pl := newTestPriceList(t, nil)
	qc := NewQuoteCalculator()
	assert.Equal(t, DefaultMaxRentalDays, qc.MaxRentalDays())

	q, err := qc.Quote(pl, at(2024, 1, 1, 10, 0), at(2025, 1, 1, 10, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, 366, q.Days())

	_, err = qc.Quote(pl, at(2024, 1, 1, 10, 0), at(2025, 1, 1, 10, 1), 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = qc.Quote(pl, at(1, 1, 1, 0, 0), at(9999, 12, 31, 0, 0), 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	short := qc.WithMaxRentalDays(7)
	assert.Equal(t, 7, short.MaxRentalDays())
	_, err = short.Quote(pl, at(2024, 6, 1, 10, 0), at(2024, 6, 9, 10, 0), 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
	assert.Equal(t, DefaultMaxRentalDays, qc.WithMaxRentalDays(0).MaxRentalDays())
}

func TestQuoteCalculator_Overflow(t *testing.T) {
	friday := at(2024, 5, 31, 10, 0)

	t.Run("km overage", func(t *testing.T) {
		pl := newTestPriceList(t, func(p *PriceListParams) { p.ExtraKmRate = int64Ptr(2000) })
		q, err := NewQuoteCalculator().Quote(pl, friday, friday.Add(48*time.Hour), 1<<53)
		assert.ErrorIs(t, err, ErrAmountOverflow)
		assert.Nil(t, q)
	})

	t.Run("subtotal accumulation", func(t *testing.T) {
		pl := newTestPriceList(t, func(p *PriceListParams) { p.BaseDailyRate = math.MaxInt64 / 2 })
		_, err := NewQuoteCalculator().Quote(pl, friday, friday.Add(72*time.Hour), 0)
		assert.ErrorIs(t, err, ErrAmountOverflow)
	})

	t.Run("weekend surcharge on a huge base", func(t *testing.T) {
		pl := newTestPriceList(t, func(p *PriceListParams) {
			p.BaseDailyRate = math.MaxInt64 - 10
			p.WeekendSurchargePct = PercentOf(50)
		})
		saturday := at(2024, 6, 1, 10, 0)
		_, err := NewQuoteCalculator().Quote(pl, saturday, saturday.Add(time.Hour), 0)
		assert.ErrorIs(t, err, ErrAmountOverflow)
	})

	t.Run("rounding past the top", func(t *testing.T) {
		pl := newTestPriceList(t, func(p *PriceListParams) {
			p.BaseDailyRate = math.MaxInt64 - 1
			p.Rounding = RoundingUpToFive
		})
		_, err := NewQuoteCalculator().Quote(pl, friday, friday.Add(time.Hour), 0)
		assert.ErrorIs(t, err, ErrAmountOverflow)
	})

	t.Run("large but representable totals stay positive", func(t *testing.T) {
		pl := newTestPriceList(t, func(p *PriceListParams) { p.ExtraKmRate = int64Ptr(2000) })
		q, err := NewQuoteCalculator().Quote(pl, friday, friday.Add(48*time.Hour), 1<<40)
		require.NoError(t, err)
		assert.Equal(t, (int64(1<<40)-200)*2000+6000, q.Total())
		assert.False(t, q.Clamped())
	})
}

func TestAmountArithmetic(t *testing.T) {
	sum, err := addAmounts(1, 2, -3, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), sum)

	_, err = addAmounts(math.MaxInt64, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)
	_, err = addAmounts(math.MinInt64, -1)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	prod, err := mulAmount(-3, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(-21), prod)

	_, err = mulAmount(1<<53, 2000)
	assert.ErrorIs(t, err, ErrAmountOverflow)
	_, err = mulAmount(-1, math.MinInt64)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestDailyRate_NilPriceList(t *testing.T) {
	_, err := DailyRate(nil, date(2024, 6, 1))
	assert.ErrorIs(t, err, ErrNoActivePriceList)
}
