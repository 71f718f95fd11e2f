package m_price_list

// Field name constants for the price_lists table.
const (
	TableName = "price_lists"

	// PairIndex covers (vehicle_id, renter_id, active).
	PairIndex = "price_lists_by_pair"

	PriceListID          = "price_list_id"
	VehicleID            = "vehicle_id"
	RenterID             = "renter_id"
	Currency             = "currency"
	BaseDailyRate        = "base_daily_rate"
	WeekendSurchargePct  = "weekend_surcharge_pct"
	KmIncludedPerDay     = "km_included_per_day"
	ExtraKmRate          = "extra_km_rate"
	Deposit              = "deposit"
	Rounding             = "rounding"
	SecondDriverDailyFee = "second_driver_daily_fee"
	Active               = "active"
	PublishedAt          = "published_at"
	CreatedAt            = "created_at"
	UpdatedAt            = "updated_at"
)
