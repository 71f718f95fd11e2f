package pricing

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/compute_quote"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/get_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/get_snapshot"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/queries/list_snapshots"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/activate_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/create_price_list"
	"github.com/light-bringer/rental-pricing-service/internal/app/pricing/usecases/issue_contract_pricing"
	"github.com/light-bringer/rental-pricing-service/internal/transport/wire"
)

// Use case and query ports, satisfied by the interactors and queries of the pricing app.
type (
	QuoteComputer interface {
		Execute(ctx context.Context, req *compute_quote.Request) (*compute_quote.Result, error)
	}
	ContractIssuer interface {
		Execute(ctx context.Context, req *issue_contract_pricing.Request) (*issue_contract_pricing.Result, error)
	}
	SnapshotGetter interface {
		Execute(ctx context.Context, req *get_snapshot.Request) (*domain.ContractPriceSnapshot, error)
	}
	SnapshotLister interface {
		Execute(ctx context.Context, req *list_snapshots.Request) (*contracts.SnapshotPage, error)
	}
	PriceListCreator interface {
		Execute(ctx context.Context, req *create_price_list.Request) (string, error)
	}
	PriceListActivator interface {
		Execute(ctx context.Context, req *activate_price_list.Request) error
	}
	PriceListGetter interface {
		Execute(ctx context.Context, req *get_price_list.Request) (*domain.PriceList, error)
	}
	EventLister interface {
		Execute(ctx context.Context, req *list_events.Request) ([]*contracts.EventDTO, error)
	}
)

// Deps bundles what the handler delegates to.
type Deps struct {
	ComputeQuote         QuoteComputer
	IssueContractPricing ContractIssuer
	GetSnapshot          SnapshotGetter
	ListSnapshots        SnapshotLister
	CreatePriceList      PriceListCreator
	ActivatePriceList    PriceListActivator
	GetPriceList         PriceListGetter
	ListEvents           EventLister
}

// Handler implements PricingServiceServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	deps Deps
}

var _ PricingServiceServer = (*Handler)(nil)

// NewHandler creates a new gRPC pricing handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Quote prices a rental against the active price list. Nothing is stored.
func (h *Handler) Quote(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req wire.QuoteRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := validateQuoteRequest(&req); err != nil {
		return nil, err
	}

	res, err := h.deps.ComputeQuote.Execute(ctx, req.ToQuery())
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(wire.NewQuote(res.Quote))
}

// IssueContractPricing returns the rental's frozen price, freezing it on first call.
func (h *Handler) IssueContractPricing(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req wire.IssueContractPricingRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := validateIssueContractPricingRequest(&req); err != nil {
		return nil, err
	}

	res, err := h.deps.IssueContractPricing.Execute(ctx, req.ToUseCase())
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(wire.NewContractPricing(res))
}

// GetSnapshot reads a rental's frozen price.
func (h *Handler) GetSnapshot(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req struct {
		RentalID string `json:"rental_id"`
	}
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.RentalID == "" {
		return nil, status.Error(codes.InvalidArgument, "rental_id is required")
	}

	snap, err := h.deps.GetSnapshot.Execute(ctx, &get_snapshot.Request{RentalID: req.RentalID})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(wire.NewSnapshot(snap))
}

// ListSnapshots pages through frozen prices, newest first.
func (h *Handler) ListSnapshots(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req struct {
		PriceListID string     `json:"price_list_id"`
		Before      *time.Time `json:"before"`
		Limit       int        `json:"limit"`
	}
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	page, err := h.deps.ListSnapshots.Execute(ctx, &list_snapshots.Request{
		PriceListID: req.PriceListID,
		Before:      req.Before,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(wire.NewSnapshotPage(page))
}

// CreatePriceList stores a new, inactive price list.
func (h *Handler) CreatePriceList(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req wire.CreatePriceListRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if err := validateCreatePriceListRequest(&req); err != nil {
		return nil, err
	}

	id, err := h.deps.CreatePriceList.Execute(ctx, req.ToUseCase())
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(wire.CreatedPriceList{PriceListID: id})
}

// ActivatePriceList makes a price list the active one for its pair.
func (h *Handler) ActivatePriceList(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req wire.ActivatePriceListRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.PriceListID == "" {
		return nil, status.Error(codes.InvalidArgument, "price_list_id is required")
	}

	if err := h.deps.ActivatePriceList.Execute(ctx, &activate_price_list.Request{PriceListID: req.PriceListID}); err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(req)
}

// GetPriceList reads a price list with its seasons and tiers.
func (h *Handler) GetPriceList(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req struct {
		PriceListID string `json:"price_list_id"`
	}
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.PriceListID == "" {
		return nil, status.Error(codes.InvalidArgument, "price_list_id is required")
	}

	pl, err := h.deps.GetPriceList.Execute(ctx, &get_price_list.Request{PriceListID: req.PriceListID})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(wire.NewPriceList(pl))
}

// ListEvents retrieves domain events from the outbox.
func (h *Handler) ListEvents(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req wire.ListEventsRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}

	events, err := h.deps.ListEvents.Execute(ctx, &list_events.Request{
		EventType:     req.EventType,
		AggregateType: req.AggregateType,
		AggregateID:   req.AggregateID,
		Status:        req.Status,
		Limit:         req.Limit,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	return encodeReply(wire.NewEventList(events))
}
