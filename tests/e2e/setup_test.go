//go:build integration

package e2e

import (
	"context"
	"net"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/compute_quote"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/get_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/get_snapshot"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/list_snapshots"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/activate_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/create_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/freeze_snapshot"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/issue_contract_pricing"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/clock"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/committer"
	"github.com/light-bringer/rental-pricing-service/internal/transport/grpc/pricing"
	"github.com/light-bringer/rental-pricing-service/tests/testutil"
)

// Services holds the wired use cases and queries for end-to-end tests.
type Services struct {
	// Commands
	CreatePriceList      *create_price_list.Interactor
	ActivatePriceList    *activate_price_list.Interactor
	IssueContractPricing *issue_contract_pricing.Interactor

	// Queries
	ComputeQuote  *compute_quote.Query
	GetSnapshot   *get_snapshot.Query
	ListSnapshots *list_snapshots.Query
	GetPriceList  *get_price_list.Query
	ListEvents    *list_events.Query

	// Infrastructure
	Client *spanner.Client
	Redis  *miniredis.Miniredis
	Clock  clock.Clock
}

func setupTest(t *testing.T) (*Services, func()) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	clk := clock.NewRealClock()
	comm := committer.NewCommitter(client)

	priceListRepo := repo.NewPriceListRepo(client)
	activeReader := repo.NewCachedPriceListReader(priceListRepo, rdb, time.Minute)
	snapshotStore := repo.NewSnapshotRepo(client, comm)
	outboxRepo := repo.NewOutboxRepo()

	quotes := compute_quote.NewQuery(activeReader, domain.NewQuoteCalculator())
	freezer := freeze_snapshot.NewInteractor(snapshotStore, outboxRepo, clk)

	svc := &Services{
		CreatePriceList:      create_price_list.NewInteractor(priceListRepo, outboxRepo, comm, clk),
		ActivatePriceList:    activate_price_list.NewInteractor(priceListRepo, outboxRepo, activeReader, comm, clk),
		IssueContractPricing: issue_contract_pricing.NewInteractor(snapshotStore, quotes, freezer),
		ComputeQuote:         quotes,
		GetSnapshot:          get_snapshot.NewQuery(snapshotStore),
		ListSnapshots:        list_snapshots.NewQuery(repo.NewSnapshotReadModel(client)),
		GetPriceList:         get_price_list.NewQuery(priceListRepo),
		ListEvents:           list_events.NewQuery(repo.NewEventsReadModel(client)),
		Client:               client,
		Redis:                mr,
		Clock:                clk,
	}

	return svc, func() {
		_ = rdb.Close()
		cleanup()
	}
}

// grpcClient serves the suite's handler over an in-memory listener.
func (s *Services) grpcClient(t *testing.T) *pricing.Client {
	t.Helper()

	handler := pricing.NewHandler(pricing.Deps{
		ComputeQuote:         s.ComputeQuote,
		IssueContractPricing: s.IssueContractPricing,
		GetSnapshot:          s.GetSnapshot,
		ListSnapshots:        s.ListSnapshots,
		CreatePriceList:      s.CreatePriceList,
		ActivatePriceList:    s.ActivatePriceList,
		GetPriceList:         s.GetPriceList,
		ListEvents:           s.ListEvents,
	})

	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	pricing.RegisterPricingServiceServer(server, handler)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return pricing.NewClient(conn)
}

// createActiveList creates and activates a plain EUR list for the pair.
func (s *Services) createActiveList(t *testing.T, vehicleID, renterID string, baseRate int64, mutate ...func(*create_price_list.Request)) string {
	t.Helper()
	ctx := context.Background()

	km, rate := int64(100), int64(20)
	req := &create_price_list.Request{
		VehicleID:        vehicleID,
		RenterID:         renterID,
		Currency:         "EUR",
		BaseDailyRate:    baseRate,
		KmIncludedPerDay: &km,
		ExtraKmRate:      &rate,
		Deposit:          50000,
		Rounding:         domain.RoundingNone,
	}
	for _, fn := range mutate {
		fn(req)
	}

	id, err := s.CreatePriceList.Execute(ctx, req)
	require.NoError(t, err)
	require.NoError(t, s.ActivatePriceList.Execute(ctx, &activate_price_list.Request{PriceListID: id}))
	return id
}
