package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/query"
)

// EventsReadModel implements contracts.EventsReadModel for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) contracts.EventsReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// ListEvents retrieves outbox events, newest first.
func (r *EventsReadModel) ListEvents(ctx context.Context, filter *contracts.EventFilter) ([]*contracts.EventDTO, error) {
	iter := r.client.Single().Query(ctx, eventsQuery(filter))
	defer iter.Stop()

	var events []*contracts.EventDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}

		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		events = append(events, outboxToDTO(&data))
	}

	return events, nil
}

func eventsQuery(filter *contracts.EventFilter) spanner.Statement {
	b := query.From(m_outbox.TableName).Select(m_outbox.NewModel().ReadColumns()...)

	if filter.EventType != "" {
		b = b.Where(query.Eq(m_outbox.EventType, filter.EventType))
	}
	if filter.AggregateType != "" {
		b = b.Where(query.Eq(m_outbox.AggregateType, filter.AggregateType))
	}
	if filter.AggregateID != "" {
		b = b.Where(query.Eq(m_outbox.AggregateID, filter.AggregateID))
	}
	if filter.Status != "" {
		b = b.Where(query.Eq(m_outbox.Status, filter.Status))
	}

	// Events from one commit share created_at; event_id keeps their order stable.
	return b.OrderBy(m_outbox.CreatedAt, query.Desc).ThenBy(m_outbox.EventID, query.Asc).Limit(int64(filter.Limit)).Build()
}

func outboxToDTO(data *m_outbox.Data) *contracts.EventDTO {
	dto := &contracts.EventDTO{
		EventID:       data.EventID,
		EventType:     data.EventType,
		AggregateType: data.AggregateType,
		AggregateID:   data.AggregateID,
		Status:        data.Status,
		RetryCount:    data.RetryCount,
		LastError:     data.ErrorMessage.StringVal,
		CreatedAt:     data.CreatedAt,
	}
	if data.Payload.Valid {
		dto.Payload = data.Payload.String()
	}
	if data.ProcessedAt.Valid {
		t := data.ProcessedAt.Time
		dto.ProcessedAt = &t
	}
	return dto
}
