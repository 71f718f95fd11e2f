package m_season

// Field name constants for the seasons table (interleaved in price_lists).
const (
	TableName = "seasons"

	PriceListID         = "price_list_id"
	SeasonID            = "season_id"
	Position            = "position"
	Name                = "name"
	StartMonth          = "start_month"
	StartDay            = "start_day"
	EndMonth            = "end_month"
	EndDay              = "end_day"
	SurchargePct        = "surcharge_pct"
	WeekendSurchargePct = "weekend_surcharge_pct"
	Priority            = "priority"
	Active              = "active"
)
