package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/transport/wire"
)

// 2^53 + 1 is the first integer a float64 cannot hold.
const beyondFloat = int64(1<<53 + 1)

func TestCodec_Int64AmountsStayExact(t *testing.T) {
	km := beyondFloat
	override := beyondFloat
	in := wire.CreatePriceListRequest{
		VehicleID:        "vehicle-1",
		RenterID:         "renter-1",
		Currency:         "EUR",
		BaseDailyRate:    beyondFloat,
		Deposit:          beyondFloat,
		KmIncludedPerDay: &km,
		Tiers: []domain.DurationTier{{
			Name:              "long",
			MinDays:           7,
			OverrideDailyRate: &override,
			Priority:          beyondFloat,
			Active:            true,
		}},
	}

	s, err := toStruct(&in)
	require.NoError(t, err)

	rate := s.Fields["base_daily_rate"]
	require.IsType(t, &structpb.Value_StringValue{}, rate.Kind)
	assert.Equal(t, "9007199254740993", rate.GetStringValue())

	var out wire.CreatePriceListRequest
	require.NoError(t, fromStruct(s, &out))
	assert.Equal(t, beyondFloat, out.BaseDailyRate)
	assert.Equal(t, beyondFloat, out.Deposit)
	require.NotNil(t, out.KmIncludedPerDay)
	assert.Equal(t, beyondFloat, *out.KmIncludedPerDay)
	require.Len(t, out.Tiers, 1)
	require.NotNil(t, out.Tiers[0].OverrideDailyRate)
	assert.Equal(t, beyondFloat, *out.Tiers[0].OverrideDailyRate)
	assert.Equal(t, beyondFloat, out.Tiers[0].Priority)
	assert.Nil(t, out.ExtraKmRate)
}

func TestCodec_QuoteHasNoNumberValues(t *testing.T) {
	reply := wire.Quote{
		Currency: "EUR",
		Days:     1,
		Total:    beyondFloat,
		Breakdown: []domain.DayRate{{
			Base:         beyondFloat,
			Rate:         beyondFloat,
			RunningTotal: beyondFloat,
		}},
	}

	s, err := toStruct(&reply)
	require.NoError(t, err)

	for name, v := range s.Fields {
		if name == "days" {
			continue
		}
		_, isNumber := v.Kind.(*structpb.Value_NumberValue)
		assert.False(t, isNumber, "%s travelled as a double", name)
	}

	var out wire.Quote
	require.NoError(t, fromStruct(s, &out))
	assert.Equal(t, beyondFloat, out.Total)
	assert.Equal(t, beyondFloat, out.Breakdown[0].RunningTotal)
}

func TestDecodeRequest_RejectsBareNumbers(t *testing.T) {
	in, err := structpb.NewStruct(map[string]interface{}{"base_daily_rate": 3000})
	require.NoError(t, err)

	var req wire.CreatePriceListRequest
	assert.Error(t, decodeRequest(in, &req))
}
