// Package contractstest provides in-memory implementations of the pricing contracts for tests.
package contractstest

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
)

// SnapshotStore is a goroutine-safe in-memory SnapshotStore.
// The first FreezeOnce per rental wins, like the primary key in Spanner.
type SnapshotStore struct {
	mu        sync.Mutex
	snapshots map[string]*domain.ContractPriceSnapshot
	extras    map[string][]*spanner.Mutation
	// Stamp replaces CreatedAt on insert, standing in for the commit timestamp.
	Stamp func() time.Time
	// BeforeFreeze runs before the insert decision, outside the lock. Tests use it to line up races.
	BeforeFreeze func(rentalID string)
	// Err, when set, fails every call.
	Err error
}

var _ contracts.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[string]*domain.ContractPriceSnapshot),
		extras:    make(map[string][]*spanner.Mutation),
	}
}

// FreezeOnce stores snap if the rental has no snapshot yet.
func (s *SnapshotStore) FreezeOnce(ctx context.Context, snap *domain.ContractPriceSnapshot, extra ...*spanner.Mutation) (domain.FreezeOutcome, *domain.ContractPriceSnapshot, error) {
	if s.Err != nil {
		return "", nil, s.Err
	}
	if s.BeforeFreeze != nil {
		s.BeforeFreeze(snap.RentalID())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.snapshots[snap.RentalID()]; ok {
		return domain.FreezeAlreadyFrozen, existing, nil
	}

	params := snap.Params()
	if s.Stamp != nil {
		params.CreatedAt = s.Stamp()
	}
	stored := domain.ReconstructSnapshot(params)
	s.snapshots[snap.RentalID()] = stored
	s.extras[snap.RentalID()] = extra
	return domain.FreezeCreated, stored, nil
}

// GetByRentalID returns domain.ErrSnapshotNotFound for unknown rentals.
func (s *SnapshotStore) GetByRentalID(ctx context.Context, rentalID string) (*domain.ContractPriceSnapshot, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[rentalID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return snap, nil
}

// Count returns the number of stored snapshots.
func (s *SnapshotStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

// Extras returns the mutations committed with a rental's snapshot.
func (s *SnapshotStore) Extras(rentalID string) []*spanner.Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extras[rentalID]
}
