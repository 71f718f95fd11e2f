package repo

import (
	"encoding/json"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_outbox"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	model *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo() contracts.OutboxRepository {
	return &OutboxRepo{
		model: m_outbox.NewModel(),
	}
}

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	// RawMessage keeps the payload a JSON object in the column instead of a quoted string.
	payload := spanner.NullJSON{Value: json.RawMessage(event.Payload), Valid: event.Payload != ""}

	data := &m_outbox.Data{
		EventID:       event.EventID,
		EventType:     event.EventType,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		Payload:       payload,
		Status:        event.Status,
	}

	return r.model.InsertMut(data)
}

// EnrichEvent converts a domain event to an outbox event with metadata.
func (r *OutboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:       uuid.New().String(),
		EventType:     event.EventType(),
		AggregateType: m_outbox.AggregateTypeOf(event.EventType()),
		AggregateID:   event.AggregateID(),
		Payload:       payload,
		Status:        m_outbox.StatusPending,
	}
}
