package m_price_list

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the price_lists table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a price list.
// Timestamps are set from the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			PriceListID,
			VehicleID,
			RenterID,
			Currency,
			BaseDailyRate,
			WeekendSurchargePct,
			KmIncludedPerDay,
			ExtraKmRate,
			Deposit,
			Rounding,
			SecondDriverDailyFee,
			Active,
			PublishedAt,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.PriceListID,
			data.VehicleID,
			data.RenterID,
			data.Currency,
			data.BaseDailyRate,
			data.WeekendSurchargePct,
			data.KmIncludedPerDay,
			data.ExtraKmRate,
			data.Deposit,
			data.Rounding,
			data.SecondDriverDailyFee,
			data.Active,
			data.PublishedAt,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific price list fields.
func (m *Model) UpdateMut(priceListID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, PriceListID)
	values = append(values, priceListID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// ReadColumns returns every column, in Data order.
func (m *Model) ReadColumns() []string {
	return []string{
		PriceListID,
		VehicleID,
		RenterID,
		Currency,
		BaseDailyRate,
		WeekendSurchargePct,
		KmIncludedPerDay,
		ExtraKmRate,
		Deposit,
		Rounding,
		SecondDriverDailyFee,
		Active,
		PublishedAt,
		CreatedAt,
		UpdatedAt,
	}
}
