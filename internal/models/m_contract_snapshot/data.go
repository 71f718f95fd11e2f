package m_contract_snapshot

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents one frozen contract price.
type Data struct {
	RentalID             string             `spanner:"rental_id"`
	PriceListID          spanner.NullString `spanner:"price_list_id"`
	Currency             string             `spanner:"currency"`
	Days                 int64              `spanner:"days"`
	TariffTotal          int64              `spanner:"tariff_total"`
	KmIncludedPerDay     spanner.NullInt64  `spanner:"km_included_per_day"`
	ExtraKmRate          spanner.NullInt64  `spanner:"extra_km_rate"`
	Deposit              int64              `spanner:"deposit"`
	SecondDriverDailyFee int64              `spanner:"second_driver_daily_fee"`
	CreatedBy            string             `spanner:"created_by"`
	CreatedAt            time.Time          `spanner:"created_at"`
}
