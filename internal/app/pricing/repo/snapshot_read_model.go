package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_contract_snapshot"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/query"
)

const (
	defaultSnapshotPageSize = 50
	maxSnapshotPageSize     = 500
)

// SnapshotReadModel implements contracts.SnapshotReadModel for Spanner.
type SnapshotReadModel struct {
	client *spanner.Client
	model  *m_contract_snapshot.Model
}

// NewSnapshotReadModel creates a new SnapshotReadModel.
func NewSnapshotReadModel(client *spanner.Client) contracts.SnapshotReadModel {
	return &SnapshotReadModel{
		client: client,
		model:  m_contract_snapshot.NewModel(),
	}
}

// ListSnapshots pages through snapshots newest first, keyed on created_at.
func (rm *SnapshotReadModel) ListSnapshots(ctx context.Context, filter *contracts.SnapshotFilter) (*contracts.SnapshotPage, error) {
	stmt := snapshotPageQuery(rm.model.ReadColumns(), filter)

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	limit := pageSize(filter.Limit)
	snapshots := make([]*domain.ContractPriceSnapshot, 0, limit)

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
		}

		var data m_contract_snapshot.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot: %w", err)
		}
		snapshots = append(snapshots, dataToSnapshot(&data))
	}

	page := &contracts.SnapshotPage{Snapshots: snapshots}
	if len(snapshots) > limit {
		page.Snapshots = snapshots[:limit]
		next := page.Snapshots[limit-1].CreatedAt()
		page.NextBefore = &next
	}

	return page, nil
}

// snapshotPageQuery fetches one row past the page so the caller knows whether more exist.
func snapshotPageQuery(columns []string, filter *contracts.SnapshotFilter) spanner.Statement {
	b := query.From(m_contract_snapshot.TableName).Select(columns...)

	if filter.PriceListID != "" {
		b = b.ForceIndex(m_contract_snapshot.ByPriceListIndex).
			Where(query.Eq(m_contract_snapshot.PriceListID, filter.PriceListID))
	}
	if filter.Before != nil {
		b = b.Where(query.Lt(m_contract_snapshot.CreatedAt, *filter.Before))
	}

	return b.OrderBy(m_contract_snapshot.CreatedAt, query.Desc).
		Limit(int64(pageSize(filter.Limit) + 1)).
		Build()
}

func pageSize(requested int) int {
	if requested <= 0 {
		return defaultSnapshotPageSize
	}
	if requested > maxSnapshotPageSize {
		return maxSnapshotPageSize
	}
	return requested
}
