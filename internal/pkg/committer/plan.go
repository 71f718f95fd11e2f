// Package committer applies collected Spanner mutations atomically.
//
// Use cases never write directly. Repositories hand back mutations, the use case gathers
// them (aggregate rows plus outbox events) into a CommitPlan, and the Committer applies
// the whole plan in one transaction:
//
//	plan := committer.NewPlan()
//	plan.AddMultiple(priceListRepo.InsertMuts(pl))
//	for _, event := range pl.DomainEvents() {
//	    plan.Add(outboxRepo.InsertMut(outboxRepo.EnrichEvent(event, payload)))
//	}
//	return committer.Apply(ctx, plan)
//
// ApplyIfAbsent is the write-once variant used for rows that must never be overwritten.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyWithReadWriteTransaction runs fn inside a read-write transaction.
// fn reads what it needs and buffers its plan with txn.BufferWrite. Spanner may retry fn,
// so it must rebuild its plan from scratch on every call.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, fn)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// ApplyIfAbsent applies the plan only when no row with key exists in table.
//
// The existence check and the writes share one read-write transaction. If a concurrent
// transaction inserts the same key first, the plan's Insert fails with AlreadyExists at
// commit; that is reported as inserted == false, not as an error. The plan must write the
// keyed row with spanner.Insert for that to hold.
func (c *Committer) ApplyIfAbsent(ctx context.Context, table string, key spanner.Key, keyColumn string, plan *CommitPlan) (bool, error) {
	if plan.IsEmpty() {
		return false, nil
	}

	var inserted bool
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		inserted = false

		_, err := txn.ReadRow(ctx, table, key, []string{keyColumn})
		if err == nil {
			return nil
		}
		if spanner.ErrCode(err) != codes.NotFound {
			return fmt.Errorf("failed to read %s %v: %w", table, key, err)
		}

		if err := txn.BufferWrite(plan.Mutations()); err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, fmt.Errorf("failed to apply commit plan if absent: %w", err)
	}

	return inserted, nil
}
