package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"

	"github.com/light-bringer/rental-pricing-service/internal/transport/grpc/pricing"
	"github.com/light-bringer/rental-pricing-service/internal/transport/wire"
)

// PricingClient calls the pricing gRPC service. *pricing.Client satisfies it.
type PricingClient interface {
	Invoke(ctx context.Context, method string, req, reply interface{}, opts ...grpc.CallOption) error
}

// Handler serves the JSON API by forwarding to the pricing gRPC service.
type Handler struct {
	client PricingClient
}

// NewHandler creates a new HTTP pricing handler.
func NewHandler(client PricingClient) *Handler {
	return &Handler{client: client}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// quote handles POST /api/v1/quotes.
func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req wire.QuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var reply wire.Quote
	if err := h.client.Invoke(r.Context(), pricing.MethodQuote, &req, &reply); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &reply)
}

// issueContractPricing handles POST /api/v1/rentals/{rentalID}/contract-pricing.
func (h *Handler) issueContractPricing(w http.ResponseWriter, r *http.Request) {
	var req wire.IssueContractPricingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.RentalID = chi.URLParam(r, "rentalID")

	var reply wire.ContractPricing
	if err := h.client.Invoke(r.Context(), pricing.MethodIssueContractPricing, &req, &reply); err != nil {
		respondError(w, err)
		return
	}

	code := http.StatusOK
	if !reply.FromSnapshot && reply.Quote != nil {
		code = http.StatusCreated
	}
	writeJSON(w, code, &reply)
}

// getSnapshot handles GET /api/v1/rentals/{rentalID}/snapshot.
func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	req := map[string]string{"rental_id": chi.URLParam(r, "rentalID")}

	var reply wire.Snapshot
	if err := h.client.Invoke(r.Context(), pricing.MethodGetSnapshot, req, &reply); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &reply)
}

// listSnapshots handles GET /api/v1/snapshots.
func (h *Handler) listSnapshots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := struct {
		PriceListID string     `json:"price_list_id,omitempty"`
		Before      *time.Time `json:"before,omitempty"`
		Limit       int        `json:"limit,omitempty"`
	}{PriceListID: query.Get("price_list_id")}

	if raw := query.Get("before"); raw != "" {
		before, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "before must be an RFC3339 timestamp")
			return
		}
		req.Before = &before
	}
	limit, ok := parseLimit(w, query.Get("limit"))
	if !ok {
		return
	}
	req.Limit = limit

	var reply wire.SnapshotPage
	if err := h.client.Invoke(r.Context(), pricing.MethodListSnapshots, &req, &reply); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &reply)
}

// createPriceList handles POST /api/v1/price-lists.
func (h *Handler) createPriceList(w http.ResponseWriter, r *http.Request) {
	var req wire.CreatePriceListRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var reply wire.CreatedPriceList
	if err := h.client.Invoke(r.Context(), pricing.MethodCreatePriceList, &req, &reply); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &reply)
}

// getPriceList handles GET /api/v1/price-lists/{priceListID}.
func (h *Handler) getPriceList(w http.ResponseWriter, r *http.Request) {
	req := map[string]string{"price_list_id": chi.URLParam(r, "priceListID")}

	var reply wire.PriceList
	if err := h.client.Invoke(r.Context(), pricing.MethodGetPriceList, req, &reply); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &reply)
}

// activatePriceList handles POST /api/v1/price-lists/{priceListID}/activate.
func (h *Handler) activatePriceList(w http.ResponseWriter, r *http.Request) {
	req := wire.ActivatePriceListRequest{PriceListID: chi.URLParam(r, "priceListID")}

	if err := h.client.Invoke(r.Context(), pricing.MethodActivatePriceList, &req, nil); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listEvents handles GET /api/v1/events.
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := wire.ListEventsRequest{
		EventType:     query.Get("event_type"),
		AggregateType: query.Get("aggregate_type"),
		AggregateID:   query.Get("aggregate_id"),
		Status:        query.Get("status"),
	}
	limit, ok := parseLimit(w, query.Get("limit"))
	if !ok {
		return
	}
	req.Limit = limit

	var reply wire.EventList
	if err := h.client.Invoke(r.Context(), pricing.MethodListEvents, &req, &reply); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &reply)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeProblem(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return false
	}
	return true
}

// parseLimit reads an optional positive limit; zero means the server default.
func parseLimit(w http.ResponseWriter, raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		writeProblem(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return limit, true
}
