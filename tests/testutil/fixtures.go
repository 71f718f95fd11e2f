package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_outbox"
)

// PriceListParams returns a valid price list for a pair: EUR, 30.00/day, 20% weekend,
// 100 km/day included at 0.20/km, one winter season and one week tier.
func PriceListParams(vehicleID, renterID string) domain.PriceListParams {
	km, rate := int64(100), int64(20)
	maxDays := 13
	discount := domain.PercentOf(10)
	return domain.PriceListParams{
		ID:                  uuid.New().String(),
		VehicleID:           vehicleID,
		RenterID:            renterID,
		Currency:            "EUR",
		BaseDailyRate:       3000,
		WeekendSurchargePct: domain.PercentOf(20),
		KmIncludedPerDay:    &km,
		ExtraKmRate:         &rate,
		Deposit:             50000,
		Rounding:            domain.RoundingNone,
		Seasons: []domain.Season{{
			ID:           uuid.New().String(),
			Name:         "winter",
			Range:        domain.SeasonRange{Start: domain.MonthDay{Month: time.December, Day: 15}, End: domain.MonthDay{Month: time.January, Day: 10}},
			SurchargePct: domain.PercentOf(30),
			Priority:     1,
			Active:       true,
		}},
		Tiers: []domain.DurationTier{{
			ID:          uuid.New().String(),
			Name:        "week",
			MinDays:     7,
			MaxDays:     &maxDays,
			DiscountPct: &discount,
			Priority:    1,
			Active:      true,
		}},
	}
}

// CreateTestPriceList writes a price list with its seasons and tiers directly to the database.
func CreateTestPriceList(t *testing.T, client *spanner.Client, params domain.PriceListParams, active bool) *domain.PriceList {
	t.Helper()

	now := time.Now().UTC()
	var publishedAt *time.Time
	if active {
		publishedAt = &now
	}
	pl, err := domain.ReconstructPriceList(params, active, publishedAt, now, now)
	require.NoError(t, err, "invalid test price list")

	muts, err := repo.NewPriceListRepo(client).InsertMuts(pl)
	require.NoError(t, err)

	_, err = client.Apply(context.Background(), muts)
	require.NoError(t, err, "failed to create test price list")

	return pl
}

// CreateTestOutboxEvent creates a pending outbox event.
func CreateTestOutboxEvent(t *testing.T, client *spanner.Client, eventType, aggregateID string) string {
	t.Helper()

	eventID := uuid.New().String()
	mutation := m_outbox.NewModel().InsertMut(&m_outbox.Data{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     spanner.NullJSON{Value: map[string]string{"test": "data"}, Valid: true},
		Status:      m_outbox.StatusPending,
	})
	_, err := client.Apply(context.Background(), []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to create test outbox event")

	return eventID
}

// OutboxEventTypes returns the event types recorded for an aggregate, oldest first.
func OutboxEventTypes(t *testing.T, client *spanner.Client, aggregateID string) []string {
	t.Helper()

	stmt := spanner.Statement{
		SQL: "SELECT event_type FROM outbox_events WHERE aggregate_id = @aggregateID ORDER BY created_at",
		Params: map[string]interface{}{"aggregateID": aggregateID},
	}
	iter := client.Single().Query(context.Background(), stmt)

	var types []string
	err := iter.Do(func(row *spanner.Row) error {
		var eventType string
		if err := row.Columns(&eventType); err != nil {
			return err
		}
		types = append(types, eventType)
		return nil
	})
	require.NoError(t, err, "failed to read outbox events")
	return types
}
