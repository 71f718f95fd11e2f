package m_contract_snapshot

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe database operations for contract price snapshots.
// Rows are only ever inserted.
type Model struct{}

// NewModel creates a new snapshot model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a plain Insert (never InsertOrUpdate) so a second writer for the
// same rental fails with AlreadyExists. CreatedAt is the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			RentalID,
			PriceListID,
			Currency,
			Days,
			TariffTotal,
			KmIncludedPerDay,
			ExtraKmRate,
			Deposit,
			SecondDriverDailyFee,
			CreatedBy,
			CreatedAt,
		},
		[]interface{}{
			data.RentalID,
			data.PriceListID,
			data.Currency,
			data.Days,
			data.TariffTotal,
			data.KmIncludedPerDay,
			data.ExtraKmRate,
			data.Deposit,
			data.SecondDriverDailyFee,
			data.CreatedBy,
			spanner.CommitTimestamp,
		},
	)
}

// Key returns the primary key of a rental's snapshot.
func (m *Model) Key(rentalID string) spanner.Key {
	return spanner.Key{rentalID}
}

// ReadColumns returns the column names for reading snapshots.
func (m *Model) ReadColumns() []string {
	return []string{
		RentalID,
		PriceListID,
		Currency,
		Days,
		TariffTotal,
		KmIncludedPerDay,
		ExtraKmRate,
		Deposit,
		SecondDriverDailyFee,
		CreatedBy,
		CreatedAt,
	}
}
