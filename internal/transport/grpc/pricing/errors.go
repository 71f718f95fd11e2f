package pricing

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrPriceListNotFound),
		errors.Is(err, domain.ErrSnapshotNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, domain.ErrNoActivePriceList),
		errors.Is(err, domain.ErrPriceListAlreadyActive),
		errors.Is(err, domain.ErrPriceListInactive):
		return status.Error(codes.FailedPrecondition, err.Error())

	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidWindow),
		errors.Is(err, domain.ErrNegativeKilometres),
		errors.Is(err, domain.ErrAmountOverflow),
		errors.Is(err, domain.ErrEmptyRentalID),
		errors.Is(err, domain.ErrMissingCreator),
		errors.Is(err, domain.ErrMissingVehicle),
		errors.Is(err, domain.ErrMissingRenter),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidPercent),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidRoundingMode),
		errors.Is(err, domain.ErrInvalidMonthDay),
		errors.Is(err, domain.ErrEmptySeasonName),
		errors.Is(err, domain.ErrEmptyTierName),
		errors.Is(err, domain.ErrInvalidTierBounds),
		errors.Is(err, domain.ErrTierWithoutEffect),
		errors.Is(err, domain.ErrInvalidTierDiscount):
		return status.Error(codes.InvalidArgument, err.Error())

	default:
		logger.Error("pricing.grpc_internal_error", "error", err)
		return status.Error(codes.Internal, "internal server error")
	}
}
