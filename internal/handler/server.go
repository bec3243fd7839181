// Package handler implements the HTTP handlers for the departure board.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, poll.go, board.go) but share the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/departure-board/internal/domain"
	"github.com/pkordes/departure-board/internal/middleware"
)

// pollBodyLimit caps POST /poll request bodies. The body is never read for
// meaning, so anything beyond a small envelope is refused.
const pollBodyLimit = 1 << 10

// DepartureServicer supplies the batch served by POST /poll.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the network.
type DepartureServicer interface {
	Current(ctx context.Context) (domain.Batch, error)
}

// BoardReader exposes the current board view model.
type BoardReader interface {
	Snapshot() domain.Board
}

// Server holds the dependencies shared by every handler.
type Server struct {
	departures DepartureServicer
	board      BoardReader
	refresh    time.Duration
}

// NewServer constructs the Server. refresh is how often the rendered page
// asks the browser to reload; it should match the poll interval.
func NewServer(departures DepartureServicer, board BoardReader, refresh time.Duration) *Server {
	return &Server{departures: departures, board: board, refresh: refresh}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, 0)
}

// Routes returns a router serving every board endpoint.
// Cross-cutting middleware (request IDs, logging, CORS) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/", s.GetBoardPage)
	r.Get("/board", s.GetBoard)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.With(middleware.NewMaxBodySizeHandler(pollBodyLimit)).Post("/poll", s.PostPoll)
	return r
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
