package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/get_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/get_snapshot"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/list_snapshots"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/activate_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/create_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/freeze_snapshot"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/issue_contract_pricing"
	"github.com/light-bringer/rental-pricing-service/internal/config"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
	"github.com/light-bringer/rental-pricing-service/internal/transport/grpc/pricing"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient  *spanner.Client
	RedisClient    *redis.Client
	PricingHandler *pricing.Handler

	// Exposed for cmd/seed, which drives the use cases without a transport.
	CreatePriceList   *create_price_list.Interactor
	ActivatePriceList *activate_price_list.Interactor
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Optional Redis client for the active price-list cache
	var redisClient *redis.Client
	if cfg.CacheEnabled() {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Reads fall through to Spanner while Redis is down.
			logger.Warn("pricing.cache_ping_failed", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
	}

	// 3. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)

	// 4. Create repositories
	priceListRepo := repo.NewPriceListRepo(spannerClient)
	activeReader := repo.NewCachedPriceListReader(priceListRepo, redisClient, cfg.PriceListCacheTTL)
	snapshotStore := repo.NewSnapshotRepo(spannerClient, comm)
	outboxRepo := repo.NewOutboxRepo()
	snapshotReadModel := repo.NewSnapshotReadModel(spannerClient)
	eventsReadModel := repo.NewEventsReadModel(spannerClient)

	// 5. Create query use cases (read operations)
	calculator := domain.NewQuoteCalculator().WithMaxRentalDays(cfg.QuoteMaxRentalDays)
	computeQuoteQuery, contractQuoteQuery := quoteQueries(priceListRepo, activeReader, calculator)
	getSnapshotQuery := get_snapshot.NewQuery(snapshotStore)
	listSnapshotsQuery := list_snapshots.NewQuery(snapshotReadModel)
	getPriceListQuery := get_price_list.NewQuery(priceListRepo)
	listEventsQuery := list_events.NewQuery(eventsReadModel)

	// 6. Create command use cases (write operations)
	createPriceListUseCase := create_price_list.NewInteractor(priceListRepo, outboxRepo, comm, clk)
	activatePriceListUseCase := activate_price_list.NewInteractor(priceListRepo, outboxRepo, activeReader, comm, clk)
	freezeSnapshotUseCase := freeze_snapshot.NewInteractor(snapshotStore, outboxRepo, clk)
	issueContractPricingUseCase := issue_contract_pricing.NewInteractor(snapshotStore, contractQuoteQuery, freezeSnapshotUseCase)

	// 7. Create gRPC handler
	pricingHandler := pricing.NewHandler(pricing.Deps{
		ComputeQuote:         computeQuoteQuery,
		IssueContractPricing: issueContractPricingUseCase,
		GetSnapshot:          getSnapshotQuery,
		ListSnapshots:        listSnapshotsQuery,
		CreatePriceList:      createPriceListUseCase,
		ActivatePriceList:    activatePriceListUseCase,
		GetPriceList:         getPriceListQuery,
		ListEvents:           listEventsQuery,
	})

	return &ServiceOptions{
		SpannerClient:     spannerClient,
		RedisClient:       redisClient,
		PricingHandler:    pricingHandler,
		CreatePriceList:   createPriceListUseCase,
		ActivatePriceList: activatePriceListUseCase,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		if err := s.RedisClient.Close(); err != nil {
			logger.Warn("pricing.redis_close_failed", "error", err)
		}
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
