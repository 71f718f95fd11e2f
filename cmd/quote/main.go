// Command quote prices a rental through a running pricing service.
// With -rental it issues (or re-reads) the rental's contract price instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/light-bringer/rental-pricing-service/internal/transport/grpc/pricing"
	"github.com/light-bringer/rental-pricing-service/internal/transport/wire"
)

func main() {
	var (
		addr      = flag.String("addr", "localhost:9090", "pricing gRPC address")
		vehicleID = flag.String("vehicle", "", "vehicle id")
		renterID  = flag.String("renter", "", "renter id")
		pickup    = flag.String("pickup", "", "pickup time, RFC3339")
		dropoff   = flag.String("dropoff", "", "dropoff time, RFC3339")
		km        = flag.Int64("km", 0, "expected kilometres")
		rentalID  = flag.String("rental", "", "rental id; issues the contract price when set")
		createdBy = flag.String("created-by", "cli", "creator recorded on a new snapshot")
	)
	flag.Parse()

	if err := run(*addr, *vehicleID, *renterID, *pickup, *dropoff, *km, *rentalID, *createdBy); err != nil {
		fmt.Fprintln(os.Stderr, "quote:", err)
		os.Exit(1)
	}
}

func run(addr, vehicleID, renterID, pickupRaw, dropoffRaw string, km int64, rentalID, createdBy string) error {
	pickup, err := time.Parse(time.RFC3339, pickupRaw)
	if err != nil {
		return fmt.Errorf("invalid -pickup: %w", err)
	}
	dropoff, err := time.Parse(time.RFC3339, dropoffRaw)
	if err != nil {
		return fmt.Errorf("invalid -dropoff: %w", err)
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	client := pricing.NewClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out interface{}
	if rentalID == "" {
		var reply wire.Quote
		err = client.Invoke(ctx, pricing.MethodQuote, &wire.QuoteRequest{
			VehicleID:  vehicleID,
			RenterID:   renterID,
			PickupAt:   pickup,
			DropoffAt:  dropoff,
			ExpectedKm: km,
		}, &reply)
		out = &reply
	} else {
		var reply wire.ContractPricing
		err = client.Invoke(ctx, pricing.MethodIssueContractPricing, &wire.IssueContractPricingRequest{
			RentalID:   rentalID,
			VehicleID:  vehicleID,
			RenterID:   renterID,
			PickupAt:   pickup,
			DropoffAt:  dropoff,
			ExpectedKm: km,
			CreatedBy:  createdBy,
		}, &reply)
		out = &reply
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
