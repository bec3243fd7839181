package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/departure-board/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// upstreamBody returns an ErrorResponse for a feed that could not be fetched
// or parsed. Internal detail stays in the logs.
func upstreamBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "upstream_unavailable", Message: "departures feed unavailable"}}
}

// internalBody returns an ErrorResponse for anything unexpected.
func internalBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}}
}

// writeError maps err to a status and error body.
// domain.ErrUpstream and domain.ErrDecode both mean the feed let us down: 502.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrDecode):
		writeJSON(w, http.StatusBadGateway, upstreamBody())
	default:
		writeJSON(w, http.StatusInternalServerError, internalBody())
	}
}
