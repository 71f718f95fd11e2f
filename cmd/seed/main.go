package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/activate_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/create_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/config"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
	"github.com/light-bringer/rental-pricing-service/internal/services"
)

// seedFile is the YAML layout of a price-list fixture file.
type seedFile struct {
	PriceLists []seedPriceList `yaml:"price_lists"`
}

type seedPriceList struct {
	VehicleID            string                `yaml:"vehicle_id"`
	RenterID             string                `yaml:"renter_id"`
	Currency             string                `yaml:"currency"`
	BaseDailyRate        int64                 `yaml:"base_daily_rate"`
	WeekendSurchargePct  domain.Percent        `yaml:"weekend_surcharge_pct"`
	KmIncludedPerDay     *int64                `yaml:"km_included_per_day"`
	ExtraKmRate          *int64                `yaml:"extra_km_rate"`
	Deposit              int64                 `yaml:"deposit"`
	Rounding             domain.RoundingMode   `yaml:"rounding"`
	SecondDriverDailyFee int64                 `yaml:"second_driver_daily_fee"`
	Seasons              []domain.Season       `yaml:"seasons"`
	Tiers                []domain.DurationTier `yaml:"tiers"`
	Activate             bool                  `yaml:"activate"`
}

func (s *seedPriceList) toRequest() *create_price_list.Request {
	return &create_price_list.Request{
		VehicleID:            s.VehicleID,
		RenterID:             s.RenterID,
		Currency:             s.Currency,
		BaseDailyRate:        s.BaseDailyRate,
		WeekendSurchargePct:  s.WeekendSurchargePct,
		KmIncludedPerDay:     s.KmIncludedPerDay,
		ExtraKmRate:          s.ExtraKmRate,
		Deposit:              s.Deposit,
		Rounding:             s.Rounding,
		SecondDriverDailyFee: s.SecondDriverDailyFee,
		Seasons:              s.Seasons,
		Tiers:                s.Tiers,
	}
}

func parseSeedFile(r io.Reader) (*seedFile, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(f.PriceLists) == 0 {
		return nil, fmt.Errorf("seed file has no price_lists")
	}
	return &f, nil
}

type (
	creator interface {
		Execute(ctx context.Context, req *create_price_list.Request) (string, error)
	}
	activator interface {
		Execute(ctx context.Context, req *activate_price_list.Request) error
	}
)

// seed creates every list in order and activates the flagged ones. It stops at the first failure.
func seed(ctx context.Context, f *seedFile, create creator, activate activator) ([]string, error) {
	ids := make([]string, 0, len(f.PriceLists))
	for i := range f.PriceLists {
		pl := &f.PriceLists[i]
		id, err := create.Execute(ctx, pl.toRequest())
		if err != nil {
			return ids, fmt.Errorf("price list %d (%s/%s): %w", i, pl.VehicleID, pl.RenterID, err)
		}
		ids = append(ids, id)

		if pl.Activate {
			if err := activate.Execute(ctx, &activate_price_list.Request{PriceListID: id}); err != nil {
				return ids, fmt.Errorf("activate %s: %w", id, err)
			}
		}
		logger.Info("seed.price_list_created", "price_list_id", id,
			"vehicle_id", pl.VehicleID, "renter_id", pl.RenterID, "active", pl.Activate)
	}
	return ids, nil
}

func main() {
	path := flag.String("file", "seeds/price_lists.yaml", "YAML file with price lists")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)

	if err := run(context.Background(), cfg, *path); err != nil {
		logger.Error("seed.failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	f, err := parseSeedFile(fh)
	if err != nil {
		return err
	}

	opts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer opts.Close()

	ids, err := seed(ctx, f, opts.CreatePriceList, opts.ActivatePriceList)
	if err != nil {
		return err
	}
	logger.Info("seed.completed", "price_lists", len(ids))
	return nil
}
