package domain

import (
	"fmt"
	"strconv"
	"time"
)

// MonthDay is a year-independent calendar day, e.g. 12-15 for December 15.
type MonthDay struct {
	Month time.Month
	Day   int
}

// NewMonthDay validates a month-day pair. February 29 is accepted since
// seasons recur every year, leap or not.
func NewMonthDay(month time.Month, day int) (MonthDay, error) {
	if month < time.January || month > time.December {
		return MonthDay{}, fmt.Errorf("%w: month %d", ErrInvalidMonthDay, month)
	}
	// 2000 is a leap year, so this yields the maximum day count for every month.
	maxDay := time.Date(2000, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day < 1 || day > maxDay {
		return MonthDay{}, fmt.Errorf("%w: day %d of %s", ErrInvalidMonthDay, day, month)
	}
	return MonthDay{Month: month, Day: day}, nil
}

// ParseMonthDay parses the "MM-DD" form.
func ParseMonthDay(s string) (MonthDay, error) {
	if len(s) != 5 || s[2] != '-' {
		return MonthDay{}, fmt.Errorf("%w: %q (want MM-DD)", ErrInvalidMonthDay, s)
	}
	month, err := strconv.Atoi(s[:2])
	if err != nil {
		return MonthDay{}, fmt.Errorf("%w: %q (want MM-DD)", ErrInvalidMonthDay, s)
	}
	day, err := strconv.Atoi(s[3:])
	if err != nil {
		return MonthDay{}, fmt.Errorf("%w: %q (want MM-DD)", ErrInvalidMonthDay, s)
	}
	return NewMonthDay(time.Month(month), day)
}

// MonthDayOf extracts the month-day of a calendar date in its own location.
func MonthDayOf(t time.Time) MonthDay {
	_, m, d := t.Date()
	return MonthDay{Month: m, Day: d}
}

// Compare orders month-days within a year: -1, 0 or +1.
func (md MonthDay) Compare(other MonthDay) int {
	switch {
	case md.Month < other.Month:
		return -1
	case md.Month > other.Month:
		return 1
	case md.Day < other.Day:
		return -1
	case md.Day > other.Day:
		return 1
	default:
		return 0
	}
}

// String renders "MM-DD".
func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (md MonthDay) MarshalText() ([]byte, error) {
	return []byte(md.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (md *MonthDay) UnmarshalText(text []byte) error {
	parsed, err := ParseMonthDay(string(text))
	if err != nil {
		return err
	}
	*md = parsed
	return nil
}

// SeasonRange is an inclusive, annually recurring month-day range.
// When End is before Start the range wraps across the year boundary (Dec 15 -> Jan 10).
type SeasonRange struct {
	Start MonthDay `json:"start" yaml:"start"`
	End   MonthDay `json:"end" yaml:"end"`
}

// Wraps reports whether the range crosses December 31.
func (r SeasonRange) Wraps() bool {
	return r.End.Compare(r.Start) < 0
}

// Contains reports whether md falls inside the range, both ends inclusive.
func (r SeasonRange) Contains(md MonthDay) bool {
	if r.Wraps() {
		return md.Compare(r.Start) >= 0 || md.Compare(r.End) <= 0
	}
	return md.Compare(r.Start) >= 0 && md.Compare(r.End) <= 0
}

// ContainsDate reports whether the calendar date of t falls inside the range.
func (r SeasonRange) ContainsDate(t time.Time) bool {
	return r.Contains(MonthDayOf(t))
}

// String renders "MM-DD..MM-DD".
func (r SeasonRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}
