package m_duration_tier

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe database operations for duration tiers.
type Model struct{}

// NewModel creates a new duration tier model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a duration tier.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	mut, _ := spanner.InsertStruct(TableName, data)
	return mut
}

// ReadColumns returns the column names for reading duration tiers.
func (m *Model) ReadColumns() []string {
	return []string{
		PriceListID,
		TierID,
		Position,
		Name,
		MinDays,
		MaxDays,
		OverrideDailyRate,
		DiscountPct,
		Priority,
		Active,
	}
}
