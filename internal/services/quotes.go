package services

import (
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/compute_quote"
)

// quoteQueries builds the two quote paths. Display quotes may read through
// the cache. Contract pricing always resolves from the store: a cached entry
// can outlive an activation made on another instance until its TTL expires,
// and a frozen snapshot must never be priced from it.
func quoteQueries(
	store contracts.ActivePriceListReader,
	cached contracts.ActivePriceListReader,
	calculator *domain.QuoteCalculator,
) (display, contract *compute_quote.Query) {
	return compute_quote.NewQuery(cached, calculator), compute_quote.NewQuery(store, calculator)
}
