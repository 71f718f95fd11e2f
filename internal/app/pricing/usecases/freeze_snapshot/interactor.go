package freeze_snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
)

// Request carries a computed quote to freeze for a rental.
type Request struct {
	RentalID  string            `validate:"required"`
	PriceList *domain.PriceList `validate:"required"`
	Quote     *domain.Quote     `validate:"required"`
	CreatedBy string            `validate:"required"`
}

// Result reports whether this call froze the price and what is stored now.
type Result struct {
	Outcome  domain.FreezeOutcome
	Snapshot *domain.ContractPriceSnapshot
}

// Interactor handles the freeze snapshot use case.
// A rental is frozen at most once; later calls leave the stored snapshot untouched.
type Interactor struct {
	store      contracts.SnapshotStore
	outboxRepo contracts.OutboxRepository
	clock      clock.Clock
	validate   *validator.Validate
}

// NewInteractor creates a new freeze snapshot interactor.
func NewInteractor(
	store contracts.SnapshotStore,
	outboxRepo contracts.OutboxRepository,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		store:      store,
		outboxRepo: outboxRepo,
		clock:      clock,
		validate:   validator.New(),
	}
}

// Execute freezes the quote unless the rental already has a snapshot.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if err := i.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if req.Quote.PriceListID() != req.PriceList.ID() {
		return nil, fmt.Errorf("%w: quote was computed from price list %s, not %s",
			domain.ErrInvalidRequest, req.Quote.PriceListID(), req.PriceList.ID())
	}

	snap, err := domain.NewSnapshotFromQuote(req.RentalID, req.PriceList, req.Quote, req.CreatedBy, i.clock.Now())
	if err != nil {
		return nil, err
	}

	// The outbox row rides in the same transaction as the insert, so it exists only for the winner.
	event := snap.FrozenEvent()
	payload, err := i.serializeEvent(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event: %w", err)
	}
	eventMut := i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, payload))

	outcome, stored, err := i.store.FreezeOnce(ctx, snap, eventMut)
	if err != nil {
		return nil, err
	}

	if outcome == domain.FreezeCreated {
		logger.Info("pricing.snapshot_frozen",
			"rental_id", stored.RentalID(),
			"price_list_id", stored.PriceListID(),
			"tariff_total", stored.TariffTotal(),
			"currency", stored.Currency(),
		)
	} else {
		logger.Debug("pricing.snapshot_already_frozen", "rental_id", stored.RentalID())
	}

	return &Result{Outcome: outcome, Snapshot: stored}, nil
}

// serializeEvent converts a domain event to JSON payload.
func (i *Interactor) serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
