package m_duration_tier

import (
	"cloud.google.com/go/spanner"
)

// Data represents one duration tier row.
type Data struct {
	PriceListID       string              `spanner:"price_list_id"`
	TierID            string              `spanner:"tier_id"`
	Position          int64               `spanner:"position"`
	Name              string              `spanner:"name"`
	MinDays           int64               `spanner:"min_days"`
	MaxDays           spanner.NullInt64   `spanner:"max_days"`
	OverrideDailyRate spanner.NullInt64   `spanner:"override_daily_rate"`
	DiscountPct       spanner.NullNumeric `spanner:"discount_pct"`
	Priority          int64               `spanner:"priority"`
	Active            bool                `spanner:"active"`
}
