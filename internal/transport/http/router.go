// Package http exposes the pricing service as a JSON API in front of its gRPC transport.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	RateLimitPerMinute int
	RequestTimeout     time.Duration
}

// NewRouter mounts the pricing routes behind request id, panic recovery, timeout and per-IP rate limiting.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(opts.RequestTimeout),
	)

	r.Get("/health", h.health)

	r.Route("/api/v1", func(api chi.Router) {
		if opts.RateLimitPerMinute > 0 {
			api.Use(httprate.Limit(opts.RateLimitPerMinute, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeProblem(w, http.StatusTooManyRequests, "rate limit exceeded")
				}),
			))
		}

		api.Post("/quotes", h.quote)
		api.Post("/rentals/{rentalID}/contract-pricing", h.issueContractPricing)
		api.Get("/rentals/{rentalID}/snapshot", h.getSnapshot)
		api.Get("/snapshots", h.listSnapshots)
		api.Post("/price-lists", h.createPriceList)
		api.Get("/price-lists/{priceListID}", h.getPriceList)
		api.Post("/price-lists/{priceListID}/activate", h.activatePriceList)
		api.Get("/events", h.listEvents)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, http.StatusMethodNotAllowed, "")
	})

	return r
}
