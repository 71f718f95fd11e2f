package domain

import (
	"fmt"
	"math"
)

// DurationTier adjusts the rental subtotal based on the total number of rental days.
// A tier carries either an override daily rate or a discount percentage; when both are
// present the override takes precedence.
type DurationTier struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	MinDays           int      `json:"min_days" yaml:"min_days"`
	MaxDays           *int     `json:"max_days,omitempty" yaml:"max_days,omitempty"` // nil = unbounded
	OverrideDailyRate *int64   `json:"override_daily_rate,omitempty,string" yaml:"override_daily_rate,omitempty"`
	DiscountPct       *Percent `json:"discount_pct,omitempty" yaml:"discount_pct,omitempty"`
	Priority          int64    `json:"priority,string" yaml:"priority"`
	Active            bool     `json:"active" yaml:"active"`
}

// Validate checks the tier's invariants.
func (t *DurationTier) Validate() error {
	if t.Name == "" {
		return ErrEmptyTierName
	}
	if t.MinDays < 1 {
		return fmt.Errorf("tier %q: min days %d: %w", t.Name, t.MinDays, ErrInvalidTierBounds)
	}
	if t.MaxDays != nil && *t.MaxDays < t.MinDays {
		return fmt.Errorf("tier %q: max days %d below min days %d: %w", t.Name, *t.MaxDays, t.MinDays, ErrInvalidTierBounds)
	}
	if t.OverrideDailyRate == nil && t.DiscountPct == nil {
		return fmt.Errorf("tier %q: %w", t.Name, ErrTierWithoutEffect)
	}
	if t.OverrideDailyRate != nil && *t.OverrideDailyRate < 0 {
		return fmt.Errorf("tier %q override: %w", t.Name, ErrNegativeAmount)
	}
	if t.DiscountPct != nil && (t.DiscountPct.IsNegative() || t.DiscountPct.GreaterThan(PercentOf(100))) {
		return fmt.Errorf("tier %q: %w", t.Name, ErrInvalidTierDiscount)
	}
	return nil
}

// Matches reports whether days falls inside [MinDays, MaxDays].
func (t *DurationTier) Matches(days int) bool {
	if days < t.MinDays {
		return false
	}
	return t.MaxDays == nil || days <= *t.MaxDays
}

// Width returns the size of the day interval; unbounded tiers are the widest possible.
func (t *DurationTier) Width() int {
	if t.MaxDays == nil {
		return math.MaxInt
	}
	return *t.MaxDays - t.MinDays
}

// Adjustment returns the signed amount the tier adds to a subtotal covering days days.
// Override: the whole subtotal is replaced by override * days.
// Discount: -round(subtotal * pct / 100).
func (t *DurationTier) Adjustment(subtotal int64, days int) (int64, error) {
	if t.OverrideDailyRate != nil {
		replaced, err := mulAmount(*t.OverrideDailyRate, int64(days))
		if err != nil {
			return 0, err
		}
		return addAmounts(replaced, -subtotal)
	}
	if t.DiscountPct != nil {
		discount, err := t.DiscountPct.Of(subtotal)
		if err != nil {
			return 0, err
		}
		return -discount, nil
	}
	return 0, nil
}

// SelectTier picks the single duration tier that applies to a rental of days days.
// Highest priority wins; ties go to the narrowest interval, then to list order.
// Returns nil when no active tier matches.
func SelectTier(pl *PriceList, days int) *DurationTier {
	if pl == nil {
		return nil
	}

	var winner *DurationTier
	for i := range pl.tiers {
		candidate := &pl.tiers[i]
		if !candidate.Active || !candidate.Matches(days) {
			continue
		}
		if winner == nil || tierBeats(candidate, winner) {
			winner = candidate
		}
	}

	if winner == nil {
		return nil
	}
	selected := *winner
	return &selected
}

func tierBeats(a, b *DurationTier) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Width() < b.Width()
}
