package m_duration_tier

// Field name constants for the duration_tiers table (interleaved in price_lists).
const (
	TableName = "duration_tiers"

	PriceListID       = "price_list_id"
	TierID            = "tier_id"
	Position          = "position"
	Name              = "name"
	MinDays           = "min_days"
	MaxDays           = "max_days"
	OverrideDailyRate = "override_daily_rate"
	DiscountPct       = "discount_pct"
	Priority          = "priority"
	Active            = "active"
)
