package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_duration_tier"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/models/m_season"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/query"
)

// rowReader is the read surface shared by read-only and read-write transactions.
type rowReader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	Read(ctx context.Context, table string, keys spanner.KeySet, columns []string) *spanner.RowIterator
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// PriceListRepo implements PriceListRepository and ActivePriceListReader for Spanner.
type PriceListRepo struct {
	client      *spanner.Client
	model       *m_price_list.Model
	seasonModel *m_season.Model
	tierModel   *m_duration_tier.Model
}

// NewPriceListRepo creates a new PriceListRepo.
func NewPriceListRepo(client *spanner.Client) *PriceListRepo {
	return &PriceListRepo{
		client:      client,
		model:       m_price_list.NewModel(),
		seasonModel: m_season.NewModel(),
		tierModel:   m_duration_tier.NewModel(),
	}
}

var (
	_ contracts.PriceListRepository   = (*PriceListRepo)(nil)
	_ contracts.ActivePriceListReader = (*PriceListRepo)(nil)
)

// InsertMuts creates the mutations for a new price list with its seasons and tiers.
func (r *PriceListRepo) InsertMuts(pl *domain.PriceList) ([]*spanner.Mutation, error) {
	if pl.ID() == "" {
		return nil, errors.New("price list has no id")
	}

	seasons := pl.Seasons()
	tiers := pl.Tiers()
	muts := make([]*spanner.Mutation, 0, 1+len(seasons)+len(tiers))

	muts = append(muts, r.model.InsertMut(priceListToData(pl)))

	for i := range seasons {
		if seasons[i].ID == "" {
			return nil, fmt.Errorf("season %q has no id", seasons[i].Name)
		}
		muts = append(muts, r.seasonModel.InsertMut(seasonToData(pl.ID(), i, &seasons[i])))
	}
	for i := range tiers {
		if tiers[i].ID == "" {
			return nil, fmt.Errorf("tier %q has no id", tiers[i].Name)
		}
		muts = append(muts, r.tierModel.InsertMut(tierToData(pl.ID(), i, &tiers[i])))
	}

	return muts, nil
}

// UpdateMut creates a mutation for the dirty fields of a price list.
func (r *PriceListRepo) UpdateMut(pl *domain.PriceList) *spanner.Mutation {
	changes := pl.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldActive) {
		updates[m_price_list.Active] = pl.IsActive()
	}

	if changes.Dirty(domain.FieldPublishedAt) {
		updates[m_price_list.PublishedAt] = nullTime(pl.PublishedAt())
	}

	return r.model.UpdateMut(pl.ID(), updates)
}

// GetByID loads a price list, its seasons and its tiers from one consistent snapshot.
func (r *PriceListRepo) GetByID(ctx context.Context, priceListID string) (*domain.PriceList, error) {
	ro := r.client.ReadOnlyTransaction()
	defer ro.Close()

	return r.load(ctx, ro, priceListID)
}

// GetByIDInTxn is GetByID inside a read-write transaction.
func (r *PriceListRepo) GetByIDInTxn(ctx context.Context, txn *spanner.ReadWriteTransaction, priceListID string) (*domain.PriceList, error) {
	return r.load(ctx, txn, priceListID)
}

// ActiveIDsInTxn returns the active price list ids for a (vehicle, renter) pair.
func (r *PriceListRepo) ActiveIDsInTxn(ctx context.Context, txn *spanner.ReadWriteTransaction, vehicleID, renterID string) ([]string, error) {
	return r.activeIDs(ctx, txn, vehicleID, renterID)
}

// FindActive resolves the active price list for a (vehicle, renter) pair.
func (r *PriceListRepo) FindActive(ctx context.Context, vehicleID, renterID string) (*domain.PriceList, error) {
	ro := r.client.ReadOnlyTransaction()
	defer ro.Close()

	ids, err := r.activeIDs(ctx, ro, vehicleID, renterID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, domain.ErrNoActivePriceList
	}

	return r.load(ctx, ro, ids[0])
}

func (r *PriceListRepo) activeIDs(ctx context.Context, reader rowReader, vehicleID, renterID string) ([]string, error) {
	stmt := query.From(m_price_list.TableName).
		ForceIndex(m_price_list.PairIndex).
		Select(m_price_list.PriceListID).
		Where(query.Eq(m_price_list.VehicleID, vehicleID)).
		Where(query.Eq(m_price_list.RenterID, renterID)).
		Where(query.Eq(m_price_list.Active, true)).
		Build()

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	var ids []string
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query active price lists: %w", err)
		}

		var id string
		if err := row.Column(0, &id); err != nil {
			return nil, fmt.Errorf("failed to parse price list id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *PriceListRepo) load(ctx context.Context, reader rowReader, priceListID string) (*domain.PriceList, error) {
	row, err := reader.ReadRow(ctx, m_price_list.TableName, spanner.Key{priceListID}, r.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrPriceListNotFound
		}
		return nil, fmt.Errorf("failed to read price list: %w", err)
	}

	var data m_price_list.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse price list: %w", err)
	}

	seasons, err := r.readSeasons(ctx, reader, priceListID)
	if err != nil {
		return nil, err
	}

	tiers, err := r.readTiers(ctx, reader, priceListID)
	if err != nil {
		return nil, err
	}

	return dataToPriceList(&data, seasons, tiers)
}

func (r *PriceListRepo) readSeasons(ctx context.Context, reader rowReader, priceListID string) ([]m_season.Data, error) {
	iter := reader.Read(ctx, m_season.TableName, spanner.Key{priceListID}.AsPrefix(), r.seasonModel.ReadColumns())
	defer iter.Stop()

	var out []m_season.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read seasons: %w", err)
		}

		var data m_season.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse season: %w", err)
		}
		out = append(out, data)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *PriceListRepo) readTiers(ctx context.Context, reader rowReader, priceListID string) ([]m_duration_tier.Data, error) {
	iter := reader.Read(ctx, m_duration_tier.TableName, spanner.Key{priceListID}.AsPrefix(), r.tierModel.ReadColumns())
	defer iter.Stop()

	var out []m_duration_tier.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read duration tiers: %w", err)
		}

		var data m_duration_tier.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse duration tier: %w", err)
		}
		out = append(out, data)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// Mapping

func priceListToData(pl *domain.PriceList) *m_price_list.Data {
	return &m_price_list.Data{
		PriceListID:          pl.ID(),
		VehicleID:            pl.VehicleID(),
		RenterID:             pl.RenterID(),
		Currency:             pl.Currency().Code(),
		BaseDailyRate:        pl.BaseDailyRate(),
		WeekendSurchargePct:  *pl.WeekendSurchargePct().Rat(),
		KmIncludedPerDay:     nullInt64(pl.KmIncludedPerDay()),
		ExtraKmRate:          nullInt64(pl.ExtraKmRate()),
		Deposit:              pl.Deposit(),
		Rounding:             string(pl.Rounding()),
		SecondDriverDailyFee: pl.SecondDriverDailyFee(),
		Active:               pl.IsActive(),
		PublishedAt:          nullTime(pl.PublishedAt()),
	}
}

func seasonToData(priceListID string, position int, s *domain.Season) *m_season.Data {
	return &m_season.Data{
		PriceListID:         priceListID,
		SeasonID:            s.ID,
		Position:            int64(position),
		Name:                s.Name,
		StartMonth:          int64(s.Range.Start.Month),
		StartDay:            int64(s.Range.Start.Day),
		EndMonth:            int64(s.Range.End.Month),
		EndDay:              int64(s.Range.End.Day),
		SurchargePct:        *s.SurchargePct.Rat(),
		WeekendSurchargePct: nullPercent(s.WeekendSurchargePct),
		Priority:            s.Priority,
		Active:              s.Active,
	}
}

func tierToData(priceListID string, position int, t *domain.DurationTier) *m_duration_tier.Data {
	data := &m_duration_tier.Data{
		PriceListID:       priceListID,
		TierID:            t.ID,
		Position:          int64(position),
		Name:              t.Name,
		MinDays:           int64(t.MinDays),
		OverrideDailyRate: nullInt64(t.OverrideDailyRate),
		DiscountPct:       nullPercent(t.DiscountPct),
		Priority:          t.Priority,
		Active:            t.Active,
	}
	if t.MaxDays != nil {
		data.MaxDays = spanner.NullInt64{Int64: int64(*t.MaxDays), Valid: true}
	}
	return data
}

func dataToPriceList(data *m_price_list.Data, seasonRows []m_season.Data, tierRows []m_duration_tier.Data) (*domain.PriceList, error) {
	weekend, err := domain.PercentFromRat(&data.WeekendSurchargePct)
	if err != nil {
		return nil, fmt.Errorf("price list %s weekend surcharge: %w", data.PriceListID, err)
	}

	seasons := make([]domain.Season, 0, len(seasonRows))
	for i := range seasonRows {
		s, err := dataToSeason(&seasonRows[i])
		if err != nil {
			return nil, fmt.Errorf("price list %s: %w", data.PriceListID, err)
		}
		seasons = append(seasons, s)
	}

	tiers := make([]domain.DurationTier, 0, len(tierRows))
	for i := range tierRows {
		t, err := dataToTier(&tierRows[i])
		if err != nil {
			return nil, fmt.Errorf("price list %s: %w", data.PriceListID, err)
		}
		tiers = append(tiers, t)
	}

	params := domain.PriceListParams{
		ID:                   data.PriceListID,
		VehicleID:            data.VehicleID,
		RenterID:             data.RenterID,
		Currency:             data.Currency,
		BaseDailyRate:        data.BaseDailyRate,
		WeekendSurchargePct:  weekend,
		KmIncludedPerDay:     int64FromNull(data.KmIncludedPerDay),
		ExtraKmRate:          int64FromNull(data.ExtraKmRate),
		Deposit:              data.Deposit,
		Rounding:             domain.RoundingMode(data.Rounding),
		SecondDriverDailyFee: data.SecondDriverDailyFee,
		Seasons:              seasons,
		Tiers:                tiers,
	}

	var publishedAt *time.Time
	if data.PublishedAt.Valid {
		t := data.PublishedAt.Time
		publishedAt = &t
	}

	return domain.ReconstructPriceList(params, data.Active, publishedAt, data.CreatedAt, data.UpdatedAt)
}

func dataToSeason(data *m_season.Data) (domain.Season, error) {
	surcharge, err := domain.PercentFromRat(&data.SurchargePct)
	if err != nil {
		return domain.Season{}, fmt.Errorf("season %s surcharge: %w", data.SeasonID, err)
	}
	weekend, err := percentFromNull(data.WeekendSurchargePct)
	if err != nil {
		return domain.Season{}, fmt.Errorf("season %s weekend surcharge: %w", data.SeasonID, err)
	}

	return domain.Season{
		ID:   data.SeasonID,
		Name: data.Name,
		Range: domain.SeasonRange{
			Start: domain.MonthDay{Month: time.Month(data.StartMonth), Day: int(data.StartDay)},
			End:   domain.MonthDay{Month: time.Month(data.EndMonth), Day: int(data.EndDay)},
		},
		SurchargePct:        surcharge,
		WeekendSurchargePct: weekend,
		Priority:            data.Priority,
		Active:              data.Active,
	}, nil
}

func dataToTier(data *m_duration_tier.Data) (domain.DurationTier, error) {
	discount, err := percentFromNull(data.DiscountPct)
	if err != nil {
		return domain.DurationTier{}, fmt.Errorf("tier %s discount: %w", data.TierID, err)
	}

	tier := domain.DurationTier{
		ID:                data.TierID,
		Name:              data.Name,
		MinDays:           int(data.MinDays),
		OverrideDailyRate: int64FromNull(data.OverrideDailyRate),
		DiscountPct:       discount,
		Priority:          data.Priority,
		Active:            data.Active,
	}
	if data.MaxDays.Valid {
		maxDays := int(data.MaxDays.Int64)
		tier.MaxDays = &maxDays
	}
	return tier, nil
}

// Null helpers

func nullInt64(v *int64) spanner.NullInt64 {
	if v == nil {
		return spanner.NullInt64{}
	}
	return spanner.NullInt64{Int64: *v, Valid: true}
}

func int64FromNull(v spanner.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}

func nullTime(t *time.Time) spanner.NullTime {
	if t == nil {
		return spanner.NullTime{}
	}
	return spanner.NullTime{Time: *t, Valid: true}
}

func nullPercent(p *domain.Percent) spanner.NullNumeric {
	if p == nil {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *p.Rat(), Valid: true}
}

func percentFromNull(v spanner.NullNumeric) (*domain.Percent, error) {
	if !v.Valid {
		return nil, nil
	}
	p, err := domain.PercentFromRat(&v.Numeric)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
