package create_price_list

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/committer"
)

// Request contains the data needed to create a price list.
// New price lists start inactive.
type Request struct {
	VehicleID            string `validate:"required"`
	RenterID             string `validate:"required"`
	Currency             string `validate:"required,len=3"`
	BaseDailyRate        int64  `validate:"gte=0"`
	WeekendSurchargePct  domain.Percent
	KmIncludedPerDay     *int64 `validate:"omitempty,gte=0"`
	ExtraKmRate          *int64 `validate:"omitempty,gte=0"`
	Deposit              int64  `validate:"gte=0"`
	Rounding             domain.RoundingMode
	SecondDriverDailyFee int64 `validate:"gte=0"`
	Seasons              []domain.Season
	Tiers                []domain.DurationTier
}

// Interactor handles the create price list use case.
type Interactor struct {
	repo       contracts.PriceListRepository
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
	clock      clock.Clock
	validate   *validator.Validate
}

// NewInteractor creates a new create price list interactor.
func NewInteractor(
	repo contracts.PriceListRepository,
	outboxRepo contracts.OutboxRepository,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
		validate:   validator.New(),
	}
}

// Execute creates a new price list following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. Validate request
	if err := i.validate.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	// 2. Build the aggregate
	pl, err := domain.NewPriceList(toParams(req), i.clock.Now())
	if err != nil {
		return "", fmt.Errorf("failed to create price list: %w", err)
	}

	// 3. Create commit plan
	plan := committer.NewPlan()

	muts, err := i.repo.InsertMuts(pl)
	if err != nil {
		return "", err
	}
	plan.AddMultiple(muts)

	// 4. Add outbox events
	for _, event := range pl.DomainEvents() {
		payload, err := i.serializeEvent(event)
		if err != nil {
			return "", fmt.Errorf("failed to serialize event: %w", err)
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, payload)
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	// 5. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return pl.ID(), nil
}

// toParams assigns fresh ids to the list and to any season or tier that has none.
func toParams(req *Request) domain.PriceListParams {
	seasons := make([]domain.Season, len(req.Seasons))
	copy(seasons, req.Seasons)
	for idx := range seasons {
		if seasons[idx].ID == "" {
			seasons[idx].ID = uuid.New().String()
		}
	}

	tiers := make([]domain.DurationTier, len(req.Tiers))
	copy(tiers, req.Tiers)
	for idx := range tiers {
		if tiers[idx].ID == "" {
			tiers[idx].ID = uuid.New().String()
		}
	}

	return domain.PriceListParams{
		ID:                   uuid.New().String(),
		VehicleID:            req.VehicleID,
		RenterID:             req.RenterID,
		Currency:             req.Currency,
		BaseDailyRate:        req.BaseDailyRate,
		WeekendSurchargePct:  req.WeekendSurchargePct,
		KmIncludedPerDay:     req.KmIncludedPerDay,
		ExtraKmRate:          req.ExtraKmRate,
		Deposit:              req.Deposit,
		Rounding:             req.Rounding,
		SecondDriverDailyFee: req.SecondDriverDailyFee,
		Seasons:              seasons,
		Tiers:                tiers,
	}
}

// serializeEvent converts a domain event to JSON payload.
func (i *Interactor) serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
