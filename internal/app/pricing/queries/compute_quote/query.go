package compute_quote

import (
	"context"
	"time"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/resolve_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
)

// Request describes the rental to price.
type Request struct {
	VehicleID  string
	RenterID   string
	PickupAt   time.Time
	DropoffAt  time.Time
	ExpectedKm int64
}

// Result is a quote together with the price list it was computed from.
type Result struct {
	PriceList *domain.PriceList
	Quote     *domain.Quote
}

// Query resolves the active price list and assembles a quote. It writes nothing.
type Query struct {
	resolver   *resolve_price_list.Query
	calculator *domain.QuoteCalculator
}

// NewQuery creates a new compute quote query.
func NewQuery(reader contracts.ActivePriceListReader, calculator *domain.QuoteCalculator) *Query {
	return &Query{
		resolver:   resolve_price_list.NewQuery(reader),
		calculator: calculator,
	}
}

// Execute prices the request against the pair's active price list.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	pl, err := q.resolver.Execute(ctx, &resolve_price_list.Request{
		VehicleID: req.VehicleID,
		RenterID:  req.RenterID,
	})
	if err != nil {
		return nil, err
	}

	quote, err := q.calculator.Quote(pl, req.PickupAt, req.DropoffAt, req.ExpectedKm)
	if err != nil {
		return nil, err
	}

	if quote.Clamped() {
		logger.WarnContext(ctx, "pricing.total_clamped",
			"price_list_id", pl.ID(),
			"days", quote.Days(),
			"subtotal_before_tier", quote.SubtotalBeforeTier(),
			"tier", quote.TierName(),
			"tier_adjustment", quote.TierAdjustment(),
		)
	}

	return &Result{PriceList: pl, Quote: quote}, nil
}
