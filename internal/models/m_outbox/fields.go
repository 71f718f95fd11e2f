package m_outbox

import "strings"

// Column names of outbox_events.
const (
	TableName = "outbox_events"

	EventID       = "event_id"
	EventType     = "event_type"
	AggregateType = "aggregate_type"
	AggregateID   = "aggregate_id"
	Payload       = "payload"
	Status        = "status"
	CreatedAt     = "created_at"
	ProcessedAt   = "processed_at"
	RetryCount    = "retry_count"
	ErrorMessage  = "error_message"
)

// Relay states of an event.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// AggregateTypeOf returns the aggregate part of a dotted event type:
// "price_list.activated" belongs to "price_list".
func AggregateTypeOf(eventType string) string {
	aggregate, _, _ := strings.Cut(eventType, ".")
	return aggregate
}
