package m_season

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data represents one season row.
type Data struct {
	PriceListID         string              `spanner:"price_list_id"`
	SeasonID            string              `spanner:"season_id"`
	Position            int64               `spanner:"position"`
	Name                string              `spanner:"name"`
	StartMonth          int64               `spanner:"start_month"`
	StartDay            int64               `spanner:"start_day"`
	EndMonth            int64               `spanner:"end_month"`
	EndDay              int64               `spanner:"end_day"`
	SurchargePct        big.Rat             `spanner:"surcharge_pct"`
	WeekendSurchargePct spanner.NullNumeric `spanner:"weekend_surcharge_pct"`
	Priority            int64               `spanner:"priority"`
	Active              bool                `spanner:"active"`
}
