package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/rental-pricing-service/internal/transport/grpc/pricing"
	"github.com/light-bringer/rental-pricing-service/internal/transport/wire"
)

type invocation struct {
	method string
	req    map[string]interface{}
}

// fakeClient answers each method with a canned reply or error and records the request it saw.
type fakeClient struct {
	replies map[string]interface{}
	errs    map[string]error
	calls   []invocation
}

func newFakeClient() *fakeClient {
	return &fakeClient{replies: map[string]interface{}{}, errs: map[string]error{}}
}

func (f *fakeClient) Invoke(ctx context.Context, method string, req, reply interface{}, opts ...grpc.CallOption) error {
	raw, err := json.Marshal(req)
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	f.calls = append(f.calls, invocation{method: method, req: fields})

	if err := f.errs[method]; err != nil {
		return err
	}
	if reply == nil {
		return nil
	}
	out, err := json.Marshal(f.replies[method])
	if err != nil {
		return err
	}
	return json.Unmarshal(out, reply)
}

func (f *fakeClient) lastCall(t *testing.T) invocation {
	t.Helper()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func serve(t *testing.T, client *fakeClient, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewHandler(client), RouterOptions{RateLimitPerMinute: 1000, RequestTimeout: time.Second})

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetail {
	t.Helper()
	assert.Equal(t, problemContentType, rec.Header().Get("Content-Type"))
	var p ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, rec.Code, p.Status)
	return p
}

func TestHealth(t *testing.T) {
	rec := serve(t, newFakeClient(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestQuote(t *testing.T) {
	client := newFakeClient()
	client.replies[pricing.MethodQuote] = wire.Quote{PriceListID: "pl-1", Currency: "EUR", Days: 2, Total: 7000}

	rec := serve(t, client, http.MethodPost, "/api/v1/quotes", `{
		"vehicle_id": "vehicle-1",
		"renter_id": "renter-1",
		"pickup_at": "2024-06-03T10:00:00Z",
		"dropoff_at": "2024-06-05T10:00:00Z",
		"expected_km": "250"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got wire.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(7000), got.Total)
	assert.Equal(t, "EUR", got.Currency)

	call := client.lastCall(t)
	assert.Equal(t, pricing.MethodQuote, call.method)
	assert.Equal(t, "vehicle-1", call.req["vehicle_id"])
	assert.Equal(t, "250", call.req["expected_km"])
}

func TestQuote_MalformedBody(t *testing.T) {
	client := newFakeClient()

	rec := serve(t, client, http.MethodPost, "/api/v1/quotes", `{"vehicle_id": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	decodeProblem(t, rec)

	rec = serve(t, client, http.MethodPost, "/api/v1/quotes", `{"vehicle": "v"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, client.calls)
}

func TestIssueContractPricing(t *testing.T) {
	body := `{
		"vehicle_id": "vehicle-1",
		"renter_id": "renter-1",
		"pickup_at": "2024-06-03T10:00:00Z",
		"dropoff_at": "2024-06-05T10:00:00Z",
		"created_by": "agent-7"
	}`

	t.Run("first issuance is created", func(t *testing.T) {
		client := newFakeClient()
		client.replies[pricing.MethodIssueContractPricing] = wire.ContractPricing{
			Snapshot: &wire.Snapshot{RentalID: "rental-1", TariffTotal: 7000},
			Quote:    &wire.Quote{Total: 7000},
			Outcome:  "created",
		}

		rec := serve(t, client, http.MethodPost, "/api/v1/rentals/rental-1/contract-pricing", body)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "rental-1", client.lastCall(t).req["rental_id"])
	})

	t.Run("frozen rental returns stored snapshot", func(t *testing.T) {
		client := newFakeClient()
		client.replies[pricing.MethodIssueContractPricing] = wire.ContractPricing{
			Snapshot:     &wire.Snapshot{RentalID: "rental-1", TariffTotal: 7000},
			FromSnapshot: true,
			Outcome:      "already_frozen",
		}

		rec := serve(t, client, http.MethodPost, "/api/v1/rentals/rental-1/contract-pricing", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var got wire.ContractPricing
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.FromSnapshot)
		assert.Nil(t, got.Quote)
	})

	t.Run("no active price list", func(t *testing.T) {
		client := newFakeClient()
		client.errs[pricing.MethodIssueContractPricing] = status.Error(codes.FailedPrecondition, "no active price list")

		rec := serve(t, client, http.MethodPost, "/api/v1/rentals/rental-1/contract-pricing", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "no active price list", decodeProblem(t, rec).Detail)
	})
}

func TestGetSnapshot(t *testing.T) {
	client := newFakeClient()
	client.errs[pricing.MethodGetSnapshot] = status.Error(codes.NotFound, "snapshot not found")

	rec := serve(t, client, http.MethodGet, "/api/v1/rentals/rental-9/snapshot", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	decodeProblem(t, rec)
	assert.Equal(t, "rental-9", client.lastCall(t).req["rental_id"])
}

func TestListSnapshots(t *testing.T) {
	client := newFakeClient()
	client.replies[pricing.MethodListSnapshots] = wire.SnapshotPage{Snapshots: []*wire.Snapshot{{RentalID: "rental-1"}}}

	rec := serve(t, client, http.MethodGet, "/api/v1/snapshots?price_list_id=pl-1&limit=10&before=2024-06-01T00:00:00Z", "")
	require.Equal(t, http.StatusOK, rec.Code)

	call := client.lastCall(t)
	assert.Equal(t, "pl-1", call.req["price_list_id"])
	assert.EqualValues(t, 10, call.req["limit"])
	assert.Equal(t, "2024-06-01T00:00:00Z", call.req["before"])

	rec = serve(t, client, http.MethodGet, "/api/v1/snapshots?before=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, client, http.MethodGet, "/api/v1/snapshots?limit=-3", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriceLists(t *testing.T) {
	client := newFakeClient()
	client.replies[pricing.MethodCreatePriceList] = wire.CreatedPriceList{PriceListID: "pl-new"}
	client.replies[pricing.MethodGetPriceList] = map[string]interface{}{"id": "pl-new", "active": true, "currency": "EUR"}

	rec := serve(t, client, http.MethodPost, "/api/v1/price-lists", `{
		"vehicle_id": "vehicle-1",
		"renter_id": "renter-1",
		"currency": "EUR",
		"base_daily_rate": "3000",
		"weekend_surcharge_pct": "12.5"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"price_list_id":"pl-new"}`, rec.Body.String())
	assert.Equal(t, "12.5", client.lastCall(t).req["weekend_surcharge_pct"])

	rec = serve(t, client, http.MethodPost, "/api/v1/price-lists/pl-new/activate", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, pricing.MethodActivatePriceList, client.lastCall(t).method)
	assert.Equal(t, "pl-new", client.lastCall(t).req["price_list_id"])

	rec = serve(t, client, http.MethodGet, "/api/v1/price-lists/pl-new", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got wire.PriceList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Active)

	client.errs[pricing.MethodActivatePriceList] = status.Error(codes.InvalidArgument, "price list has invalid percent")
	rec = serve(t, client, http.MethodPost, "/api/v1/price-lists/pl-new/activate", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEvents(t *testing.T) {
	client := newFakeClient()
	client.replies[pricing.MethodListEvents] = wire.EventList{
		Events:     []wire.Event{{EventID: "e-1", EventType: "price_list.activated", Status: "pending"}},
		TotalCount: 1,
	}

	rec := serve(t, client, http.MethodGet, "/api/v1/events?event_type=price_list.activated&aggregate_type=price_list&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got wire.EventList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.TotalCount)

	call := client.lastCall(t)
	assert.Equal(t, "price_list.activated", call.req["event_type"])
	assert.Equal(t, "price_list", call.req["aggregate_type"])
	assert.EqualValues(t, 5, call.req["limit"])
}

func TestUpstreamErrors(t *testing.T) {
	client := newFakeClient()
	client.errs[pricing.MethodGetSnapshot] = status.Error(codes.Internal, "spanner: session pool exhausted")

	rec := serve(t, client, http.MethodGet, "/api/v1/rentals/rental-1/snapshot", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, decodeProblem(t, rec).Detail)

	client.errs[pricing.MethodGetSnapshot] = context.DeadlineExceeded
	rec = serve(t, client, http.MethodGet, "/api/v1/rentals/rental-1/snapshot", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRouting(t *testing.T) {
	client := newFakeClient()

	rec := serve(t, client, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	decodeProblem(t, rec)

	rec = serve(t, client, http.MethodDelete, "/api/v1/quotes", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimit(t *testing.T) {
	router := NewRouter(NewHandler(newFakeClient()), RouterOptions{RateLimitPerMinute: 1})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	decodeProblem(t, second)
}
