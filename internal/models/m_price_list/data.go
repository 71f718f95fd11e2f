package m_price_list

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the price_lists table.
type Data struct {
	PriceListID          string            `spanner:"price_list_id"`
	VehicleID            string            `spanner:"vehicle_id"`
	RenterID             string            `spanner:"renter_id"`
	Currency             string            `spanner:"currency"`
	BaseDailyRate        int64             `spanner:"base_daily_rate"`
	WeekendSurchargePct  big.Rat           `spanner:"weekend_surcharge_pct"`
	KmIncludedPerDay     spanner.NullInt64 `spanner:"km_included_per_day"`
	ExtraKmRate          spanner.NullInt64 `spanner:"extra_km_rate"`
	Deposit              int64             `spanner:"deposit"`
	Rounding             string            `spanner:"rounding"`
	SecondDriverDailyFee int64             `spanner:"second_driver_daily_fee"`
	Active               bool              `spanner:"active"`
	PublishedAt          spanner.NullTime  `spanner:"published_at"`
	CreatedAt            time.Time         `spanner:"created_at"`
	UpdatedAt            time.Time         `spanner:"updated_at"`
}
