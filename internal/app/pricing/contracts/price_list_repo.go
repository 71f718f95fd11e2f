package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
)

// PriceListRepository defines persistence for price lists.
// Writes are returned as mutations; use cases decide how to commit them.
type PriceListRepository interface {
	// InsertMuts creates the mutations for a new price list: the list row, then one row per
	// season and tier in configured order.
	InsertMuts(pl *domain.PriceList) ([]*spanner.Mutation, error)

	// UpdateMut creates a mutation for the dirty fields of a price list, or nil when nothing changed.
	UpdateMut(pl *domain.PriceList) *spanner.Mutation

	// GetByID loads a price list with its seasons and tiers.
	GetByID(ctx context.Context, priceListID string) (*domain.PriceList, error)

	// GetByIDInTxn is GetByID inside a read-write transaction.
	GetByIDInTxn(ctx context.Context, txn *spanner.ReadWriteTransaction, priceListID string) (*domain.PriceList, error)

	// ActiveIDsInTxn returns the ids of the active price lists for a (vehicle, renter) pair.
	ActiveIDsInTxn(ctx context.Context, txn *spanner.ReadWriteTransaction, vehicleID, renterID string) ([]string, error)
}

// ActivePriceListReader resolves the price list currently active for a (vehicle, renter) pair.
type ActivePriceListReader interface {
	// FindActive returns domain.ErrNoActivePriceList when the pair has none.
	FindActive(ctx context.Context, vehicleID, renterID string) (*domain.PriceList, error)
}

// PriceListCache is the invalidation side of a cached ActivePriceListReader.
type PriceListCache interface {
	Invalidate(ctx context.Context, vehicleID, renterID string) error
}
