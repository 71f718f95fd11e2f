package m_season

import (
	"cloud.google.com/go/spanner"
)

// Model provides type-safe database operations for seasons.
type Model struct{}

// NewModel creates a new season model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a season.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	mut, _ := spanner.InsertStruct(TableName, data)
	return mut
}

// ReadColumns returns the column names for reading seasons.
func (m *Model) ReadColumns() []string {
	return []string{
		PriceListID,
		SeasonID,
		Position,
		Name,
		StartMonth,
		StartDay,
		EndMonth,
		EndDay,
		SurchargePct,
		WeekendSurchargePct,
		Priority,
		Active,
	}
}
