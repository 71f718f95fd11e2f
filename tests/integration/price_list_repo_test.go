//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/rental-pricing-service/tests/testutil"
)

func TestPriceListRepo_RoundTrip(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	params := testutil.PriceListParams("vehicle-1", "renter-1")
	half := domain.PercentOf(12)
	params.Seasons[0].WeekendSurchargePct = &half
	created := testutil.CreateTestPriceList(t, client, params, false)

	got, err := repo.NewPriceListRepo(client).GetByID(ctx, created.ID())
	require.NoError(t, err)

	assert.Equal(t, created.ID(), got.ID())
	assert.False(t, got.IsActive())
	assert.Nil(t, got.PublishedAt())
	assert.True(t, got.WeekendSurchargePct().Equals(domain.PercentOf(20)))

	require.Len(t, got.Seasons(), 1)
	season := got.Seasons()[0]
	assert.Equal(t, "winter", season.Name)
	assert.True(t, season.Range.Wraps())
	require.NotNil(t, season.WeekendSurchargePct)
	assert.True(t, season.WeekendSurchargePct.Equals(half))

	require.Len(t, got.Tiers(), 1)
	require.NotNil(t, got.Tiers()[0].MaxDays)
	assert.Equal(t, 13, *got.Tiers()[0].MaxDays)
	assert.Nil(t, got.Tiers()[0].OverrideDailyRate)
}

func TestPriceListRepo_NotFound(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	_, err := repo.NewPriceListRepo(client).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPriceListNotFound)
}

func TestPriceListRepo_FindActive(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	priceLists := repo.NewPriceListRepo(client)

	testutil.CreateTestPriceList(t, client, testutil.PriceListParams("vehicle-1", "renter-1"), false)
	_, err := priceLists.FindActive(ctx, "vehicle-1", "renter-1")
	assert.ErrorIs(t, err, domain.ErrNoActivePriceList)

	active := testutil.CreateTestPriceList(t, client, testutil.PriceListParams("vehicle-1", "renter-1"), true)
	testutil.CreateTestPriceList(t, client, testutil.PriceListParams("vehicle-2", "renter-1"), true)

	got, err := priceLists.FindActive(ctx, "vehicle-1", "renter-1")
	require.NoError(t, err)
	assert.Equal(t, active.ID(), got.ID())
	assert.True(t, got.IsActive())
}
