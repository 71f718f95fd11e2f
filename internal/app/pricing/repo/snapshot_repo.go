package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_contract_snapshot"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/committer"
)

// SnapshotRepo implements SnapshotStore for Spanner.
// Snapshots are insert-only: there is no update or delete path.
type SnapshotRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_contract_snapshot.Model
}

// NewSnapshotRepo creates a new SnapshotRepo.
func NewSnapshotRepo(client *spanner.Client, comm *committer.Committer) contracts.SnapshotStore {
	return &SnapshotRepo{
		client:    client,
		committer: comm,
		model:     m_contract_snapshot.NewModel(),
	}
}

// FreezeOnce inserts snap and extra in one transaction unless the rental already has a row.
// The stored row is read back so callers see the commit timestamp as created_at.
func (r *SnapshotRepo) FreezeOnce(ctx context.Context, snap *domain.ContractPriceSnapshot, extra ...*spanner.Mutation) (domain.FreezeOutcome, *domain.ContractPriceSnapshot, error) {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(snapshotToData(snap)))
	plan.AddMultiple(extra)

	inserted, err := r.committer.ApplyIfAbsent(ctx,
		m_contract_snapshot.TableName,
		r.model.Key(snap.RentalID()),
		m_contract_snapshot.RentalID,
		plan,
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to freeze snapshot for rental %s: %w", snap.RentalID(), err)
	}

	stored, err := r.GetByRentalID(ctx, snap.RentalID())
	if err != nil {
		return "", nil, err
	}

	if inserted {
		return domain.FreezeCreated, stored, nil
	}
	return domain.FreezeAlreadyFrozen, stored, nil
}

// GetByRentalID reads the snapshot of a rental.
func (r *SnapshotRepo) GetByRentalID(ctx context.Context, rentalID string) (*domain.ContractPriceSnapshot, error) {
	row, err := r.client.Single().ReadRow(ctx, m_contract_snapshot.TableName, r.model.Key(rentalID), r.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var data m_contract_snapshot.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	return dataToSnapshot(&data), nil
}

func snapshotToData(s *domain.ContractPriceSnapshot) *m_contract_snapshot.Data {
	data := &m_contract_snapshot.Data{
		RentalID:             s.RentalID(),
		Currency:             s.Currency(),
		Days:                 int64(s.Days()),
		TariffTotal:          s.TariffTotal(),
		KmIncludedPerDay:     nullInt64(s.KmIncludedPerDay()),
		ExtraKmRate:          nullInt64(s.ExtraKmRate()),
		Deposit:              s.Deposit(),
		SecondDriverDailyFee: s.SecondDriverDailyFee(),
		CreatedBy:            s.CreatedBy(),
	}
	if s.PriceListID() != "" {
		data.PriceListID = spanner.NullString{StringVal: s.PriceListID(), Valid: true}
	}
	return data
}

func dataToSnapshot(data *m_contract_snapshot.Data) *domain.ContractPriceSnapshot {
	return domain.ReconstructSnapshot(domain.SnapshotParams{
		RentalID:             data.RentalID,
		PriceListID:          data.PriceListID.StringVal,
		Currency:             data.Currency,
		Days:                 int(data.Days),
		TariffTotal:          data.TariffTotal,
		KmIncludedPerDay:     int64FromNull(data.KmIncludedPerDay),
		ExtraKmRate:          int64FromNull(data.ExtraKmRate),
		Deposit:              data.Deposit,
		SecondDriverDailyFee: data.SecondDriverDailyFee,
		CreatedBy:            data.CreatedBy,
		CreatedAt:            data.CreatedAt,
	})
}
