package domain

import (
	"fmt"
	"time"
)

// Season is a recurring calendar range that adds a surcharge to the base daily rate.
// WeekendSurchargePct, when set, replaces the price list's weekend percentage on
// weekend days that fall inside the season.
type Season struct {
	ID                  string      `json:"id" yaml:"id"`
	Name                string      `json:"name" yaml:"name"`
	Range               SeasonRange `json:"range" yaml:"range"`
	SurchargePct        Percent     `json:"surcharge_pct" yaml:"surcharge_pct"`
	WeekendSurchargePct *Percent    `json:"weekend_surcharge_pct,omitempty" yaml:"weekend_surcharge_pct,omitempty"`
	Priority            int64       `json:"priority,string" yaml:"priority"`
	Active              bool        `json:"active" yaml:"active"`
}

// Validate checks the season's invariants.
func (s *Season) Validate() error {
	if s.Name == "" {
		return ErrEmptySeasonName
	}
	if _, err := NewMonthDay(s.Range.Start.Month, s.Range.Start.Day); err != nil {
		return fmt.Errorf("season %q start: %w", s.Name, err)
	}
	if _, err := NewMonthDay(s.Range.End.Month, s.Range.End.Day); err != nil {
		return fmt.Errorf("season %q end: %w", s.Name, err)
	}
	if s.SurchargePct.IsNegative() {
		return fmt.Errorf("season %q surcharge: %w", s.Name, ErrInvalidPercent)
	}
	if s.WeekendSurchargePct != nil && s.WeekendSurchargePct.IsNegative() {
		return fmt.Errorf("season %q weekend surcharge: %w", s.Name, ErrInvalidPercent)
	}
	return nil
}

// DefinesWeekendSurcharge reports whether the season overrides the list's weekend percentage.
func (s *Season) DefinesWeekendSurcharge() bool {
	return s.WeekendSurchargePct != nil
}

// Covers reports whether an active season applies to the calendar date.
func (s *Season) Covers(date time.Time) bool {
	return s.Active && s.Range.ContainsDate(date)
}

// MatchSeason resolves the season that prices the given calendar day.
// Among all active seasons containing the day, the highest priority wins; ties go to the
// season with the earliest start month-day, then to the one listed first. Returns nil when
// no season applies and the day is priced at the plain base rate.
func MatchSeason(pl *PriceList, date time.Time) *Season {
	if pl == nil {
		return nil
	}

	var winner *Season
	for i := range pl.seasons {
		candidate := &pl.seasons[i]
		if !candidate.Covers(date) {
			continue
		}
		if winner == nil || seasonBeats(candidate, winner) {
			winner = candidate
		}
	}

	if winner == nil {
		return nil
	}
	matched := *winner
	return &matched
}

// seasonBeats reports whether a strictly outranks b. Equal candidates keep list order.
func seasonBeats(a, b *Season) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Range.Start.Compare(b.Range.Start) < 0
}
