package pricing

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/rental-pricing-service/internal/transport/wire"
)

func validateQuoteRequest(req *wire.QuoteRequest) error {
	if req.VehicleID == "" {
		return status.Error(codes.InvalidArgument, "vehicle_id is required")
	}
	if req.RenterID == "" {
		return status.Error(codes.InvalidArgument, "renter_id is required")
	}
	if req.PickupAt.IsZero() || req.DropoffAt.IsZero() {
		return status.Error(codes.InvalidArgument, "pickup_at and dropoff_at are required")
	}
	return nil
}

func validateIssueContractPricingRequest(req *wire.IssueContractPricingRequest) error {
	if req.RentalID == "" {
		return status.Error(codes.InvalidArgument, "rental_id is required")
	}
	if req.CreatedBy == "" {
		return status.Error(codes.InvalidArgument, "created_by is required")
	}
	return validateQuoteRequest(&wire.QuoteRequest{
		VehicleID: req.VehicleID,
		RenterID:  req.RenterID,
		PickupAt:  req.PickupAt,
		DropoffAt: req.DropoffAt,
	})
}

func validateCreatePriceListRequest(req *wire.CreatePriceListRequest) error {
	if req.VehicleID == "" {
		return status.Error(codes.InvalidArgument, "vehicle_id is required")
	}
	if req.RenterID == "" {
		return status.Error(codes.InvalidArgument, "renter_id is required")
	}
	if req.Currency == "" {
		return status.Error(codes.InvalidArgument, "currency is required")
	}
	return nil
}
