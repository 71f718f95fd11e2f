package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Model builds mutations for outbox_events.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut writes a new event. created_at is the commit timestamp so events
// order with the aggregate write that produced them.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	aggregateType := data.AggregateType
	if aggregateType == "" {
		aggregateType = AggregateTypeOf(data.EventType)
	}

	return spanner.Insert(TableName, m.ReadColumns(), []interface{}{
		data.EventID,
		data.EventType,
		aggregateType,
		data.AggregateID,
		data.Payload,
		data.Status,
		spanner.CommitTimestamp,
		data.ProcessedAt,
		data.RetryCount,
		data.ErrorMessage,
	})
}

// MarkMut moves an event to a terminal relay state. A non-empty errMsg is
// stored alongside a failed status.
func (m *Model) MarkMut(eventID, status string, processedAt time.Time, errMsg string) *spanner.Mutation {
	cols := []string{EventID, Status, ProcessedAt}
	vals := []interface{}{eventID, status, processedAt}
	if errMsg != "" {
		cols = append(cols, ErrorMessage)
		vals = append(vals, errMsg)
	}
	return spanner.Update(TableName, cols, vals)
}

// ReadColumns returns every column, in Data order.
func (m *Model) ReadColumns() []string {
	return []string{
		EventID,
		EventType,
		AggregateType,
		AggregateID,
		Payload,
		Status,
		CreatedAt,
		ProcessedAt,
		RetryCount,
		ErrorMessage,
	}
}
