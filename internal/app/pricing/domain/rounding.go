package domain

import "fmt"

// RoundingMode controls how a quote's pre-rounding total is rounded. Rounding never goes down.
type RoundingMode string

const (
	RoundingNone     RoundingMode = "none"
	RoundingUpToOne  RoundingMode = "round-up-to-1"
	RoundingUpToFive RoundingMode = "round-up-to-5"
)

// ParseRoundingMode validates a rounding mode string. Empty means none.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(s) {
	case "", RoundingNone:
		return RoundingNone, nil
	case RoundingUpToOne, RoundingUpToFive:
		return RoundingMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRoundingMode, s)
	}
}

// Step returns the rounding granularity in minor units for the currency:
// one whole unit for round-up-to-1, five whole units for round-up-to-5.
func (m RoundingMode) Step(cur Currency) int64 {
	switch m {
	case RoundingUpToOne:
		return cur.MinorPerMajor()
	case RoundingUpToFive:
		return 5 * cur.MinorPerMajor()
	default:
		return 1
	}
}

// Delta returns the non-negative amount to add to total to satisfy the mode.
func (m RoundingMode) Delta(total int64, cur Currency) (int64, error) {
	rounded, err := ceilToMultiple(total, m.Step(cur))
	if err != nil {
		return 0, err
	}
	return rounded - total, nil
}
