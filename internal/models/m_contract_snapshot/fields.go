package m_contract_snapshot

// Field name constants for the contract_price_snapshots table.
const (
	TableName = "contract_price_snapshots"

	// ByPriceListIndex covers (price_list_id, created_at DESC).
	ByPriceListIndex = "snapshots_by_price_list"

	RentalID             = "rental_id"
	PriceListID          = "price_list_id"
	Currency             = "currency"
	Days                 = "days"
	TariffTotal          = "tariff_total"
	KmIncludedPerDay     = "km_included_per_day"
	ExtraKmRate          = "extra_km_rate"
	Deposit              = "deposit"
	SecondDriverDailyFee = "second_driver_daily_fee"
	CreatedBy            = "created_by"
	CreatedAt            = "created_at"
)
