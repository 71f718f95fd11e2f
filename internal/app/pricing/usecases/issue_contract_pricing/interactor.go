package issue_contract_pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/compute_quote"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/freeze_snapshot"
)

// Request describes the rental whose contract is being issued.
type Request struct {
	RentalID   string    `validate:"required"`
	VehicleID  string    `validate:"required"`
	RenterID   string    `validate:"required"`
	PickupAt   time.Time `validate:"required"`
	DropoffAt  time.Time `validate:"required"`
	ExpectedKm int64     `validate:"gte=0"`
	CreatedBy  string    `validate:"required"`
}

// Result is the price a contract must print.
type Result struct {
	// Snapshot is always the stored snapshot, never a freshly computed candidate.
	Snapshot *domain.ContractPriceSnapshot
	// Quote is set only when this call froze the price.
	Quote *domain.Quote
	// FromSnapshot is true when the rental was already frozen before this call.
	FromSnapshot bool
	Outcome      domain.FreezeOutcome
}

// Interactor reads a rental's frozen price, or computes and freezes it on first issuance.
type Interactor struct {
	store    contracts.SnapshotStore
	quotes   *compute_quote.Query
	freezer  *freeze_snapshot.Interactor
	validate *validator.Validate
}

// NewInteractor creates a new issue contract pricing interactor.
func NewInteractor(
	store contracts.SnapshotStore,
	quotes *compute_quote.Query,
	freezer *freeze_snapshot.Interactor,
) *Interactor {
	return &Interactor{
		store:    store,
		quotes:   quotes,
		freezer:  freezer,
		validate: validator.New(),
	}
}

// Execute returns the frozen price of the rental, freezing it first if needed.
// Once frozen, later price list changes never alter what this returns.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	if err := i.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	// 1. A frozen rental is returned verbatim.
	existing, err := i.store.GetByRentalID(ctx, req.RentalID)
	if err == nil {
		return &Result{Snapshot: existing, FromSnapshot: true, Outcome: domain.FreezeAlreadyFrozen}, nil
	}
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		return nil, err
	}

	// 2. Price against the active list.
	priced, err := i.quotes.Execute(ctx, &compute_quote.Request{
		VehicleID:  req.VehicleID,
		RenterID:   req.RenterID,
		PickupAt:   req.PickupAt,
		DropoffAt:  req.DropoffAt,
		ExpectedKm: req.ExpectedKm,
	})
	if err != nil {
		return nil, err
	}

	// 3. Freeze. A concurrent issuer may win; its numbers are what we return then.
	frozen, err := i.freezer.Execute(ctx, &freeze_snapshot.Request{
		RentalID:  req.RentalID,
		PriceList: priced.PriceList,
		Quote:     priced.Quote,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Snapshot: frozen.Snapshot, Outcome: frozen.Outcome}
	if frozen.Outcome == domain.FreezeCreated {
		result.Quote = priced.Quote
	}
	return result, nil
}
