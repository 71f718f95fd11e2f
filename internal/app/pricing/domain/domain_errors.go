package domain

import "errors"

// Domain errors as sentinel values
var (
	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid request")

	// Quote errors
	ErrInvalidWindow      = errors.New("dropoff must be after pickup")
	ErrNoActivePriceList  = errors.New("no active price list")
	ErrNegativeKilometres = errors.New("expected kilometres cannot be negative")
	ErrAmountOverflow     = errors.New("amount exceeds the representable range")

	// Price list errors
	ErrPriceListNotFound      = errors.New("price list not found")
	ErrPriceListAlreadyActive = errors.New("price list is already active")
	ErrPriceListInactive      = errors.New("price list is not active")
	ErrMissingVehicle         = errors.New("price list vehicle id cannot be empty")
	ErrMissingRenter          = errors.New("price list renter id cannot be empty")
	ErrInvalidCurrency        = errors.New("invalid ISO-4217 currency code")
	ErrInvalidPercent         = errors.New("invalid percentage")
	ErrNegativeAmount         = errors.New("monetary amount cannot be negative")
	ErrInvalidRoundingMode    = errors.New("invalid rounding mode")

	// Season errors
	ErrInvalidMonthDay = errors.New("invalid month-day")
	ErrEmptySeasonName = errors.New("season name cannot be empty")

	// Tier errors
	ErrEmptyTierName       = errors.New("duration tier name cannot be empty")
	ErrInvalidTierBounds   = errors.New("duration tier bounds are invalid")
	ErrTierWithoutEffect   = errors.New("duration tier needs an override rate or a discount percentage")
	ErrInvalidTierDiscount = errors.New("duration tier discount must be between 0 and 100")

	// Snapshot errors
	ErrSnapshotNotFound = errors.New("contract price snapshot not found")
	ErrEmptyRentalID    = errors.New("rental id cannot be empty")
	ErrMissingCreator   = errors.New("snapshot creator cannot be empty")
)
