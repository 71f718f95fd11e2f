package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
)

// SnapshotStore persists contract price snapshots with write-once semantics.
type SnapshotStore interface {
	// FreezeOnce stores snap unless the rental already has a snapshot. extra mutations
	// (outbox events) are committed only together with a successful insert.
	// It always returns the snapshot that is stored afterwards: snap itself on
	// FreezeCreated, the earlier or concurrent winner on FreezeAlreadyFrozen.
	FreezeOnce(ctx context.Context, snap *domain.ContractPriceSnapshot, extra ...*spanner.Mutation) (domain.FreezeOutcome, *domain.ContractPriceSnapshot, error)

	// GetByRentalID returns domain.ErrSnapshotNotFound when the rental has no snapshot.
	GetByRentalID(ctx context.Context, rentalID string) (*domain.ContractPriceSnapshot, error)
}
