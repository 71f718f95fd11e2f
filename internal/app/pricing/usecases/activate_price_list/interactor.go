package activate_price_list

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
)

// Request contains the price list to activate.
type Request struct {
	PriceListID string
}

// Interactor handles the activate price list use case.
// At most one price list is active per (vehicle, renter) pair: activating one
// deactivates the others in the same transaction.
type Interactor struct {
	repo       contracts.PriceListRepository
	outboxRepo contracts.OutboxRepository
	cache      contracts.PriceListCache
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new activate price list interactor.
func NewInteractor(
	repo contracts.PriceListRepository,
	outboxRepo contracts.OutboxRepository,
	cache contracts.PriceListCache,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		cache:      cache,
		committer:  committer,
		clock:      clock,
	}
}

// Execute activates a price list following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.PriceListID == "" {
		return fmt.Errorf("%w: price list id is required", domain.ErrInvalidRequest)
	}

	var (
		activated  *domain.PriceList
		superseded []string
	)

	err := i.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		// The function may be retried; rebuild everything from fresh reads.
		superseded = superseded[:0]

		// 1. Load aggregate
		pl, err := i.repo.GetByIDInTxn(ctx, txn, req.PriceListID)
		if err != nil {
			return err
		}

		// 2. Call domain method
		now := i.clock.Now()
		if err := pl.Activate(now); err != nil {
			return err
		}

		// 3. Create commit plan
		plan := committer.NewPlan()
		touched := []*domain.PriceList{pl}

		activeIDs, err := i.repo.ActiveIDsInTxn(ctx, txn, pl.VehicleID(), pl.RenterID())
		if err != nil {
			return err
		}
		for _, id := range activeIDs {
			other, err := i.repo.GetByIDInTxn(ctx, txn, id)
			if err != nil {
				return err
			}
			if err := other.Deactivate(now); err != nil {
				return err
			}
			touched = append(touched, other)
			superseded = append(superseded, id)
		}

		// 4. Add repository mutations and outbox events
		for _, agg := range touched {
			plan.Add(i.repo.UpdateMut(agg))
			for _, event := range agg.DomainEvents() {
				payload, err := i.serializeEvent(event)
				if err != nil {
					return fmt.Errorf("failed to serialize event: %w", err)
				}
				plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, payload)))
			}
		}

		activated = pl
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("failed to activate price list: %w", err)
	}

	if err := i.cache.Invalidate(ctx, activated.VehicleID(), activated.RenterID()); err != nil {
		logger.WarnContext(ctx, "pricing.cache_invalidate_failed", "price_list_id", activated.ID(), "error", err)
	}

	logger.Info("pricing.price_list_activated",
		"price_list_id", activated.ID(),
		"vehicle_id", activated.VehicleID(),
		"renter_id", activated.RenterID(),
		"superseded", superseded,
	)

	return nil
}

// serializeEvent converts a domain event to JSON payload.
func (i *Interactor) serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
