package http

import (
	"encoding/json"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
)

// ProblemDetail is an RFC7807 problem document.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

const problemContentType = "application/problem+json"

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("pricing.http_encode_failed", "error", err)
	}
}

func writeProblem(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ProblemDetail{
		Title:  http.StatusText(code),
		Status: code,
		Detail: detail,
	})
}

// respondError maps a gRPC status from the pricing service to a problem response.
func respondError(w http.ResponseWriter, err error) {
	st, ok := status.FromError(err)
	if !ok {
		logger.Error("pricing.http_upstream_error", "error", err)
		writeProblem(w, http.StatusBadGateway, "pricing service unavailable")
		return
	}

	switch st.Code() {
	case codes.InvalidArgument:
		writeProblem(w, http.StatusBadRequest, st.Message())
	case codes.NotFound:
		writeProblem(w, http.StatusNotFound, st.Message())
	case codes.FailedPrecondition:
		writeProblem(w, http.StatusConflict, st.Message())
	case codes.DeadlineExceeded, codes.Canceled:
		writeProblem(w, http.StatusGatewayTimeout, st.Message())
	case codes.Unavailable:
		writeProblem(w, http.StatusServiceUnavailable, st.Message())
	default:
		writeProblem(w, http.StatusInternalServerError, "")
	}
}
