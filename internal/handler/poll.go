package handler

import (
	"log/slog"
	"net/http"
)

// PostPoll handles POST /poll.
// It returns the current departures as a JSON array in feed order. The
// request body is ignored. Feed failures answer 502 so pollers keep their
// previous board.
func (s *Server) PostPoll(w http.ResponseWriter, r *http.Request) {
	batch, err := s.departures.Current(r.Context())
	if err != nil {
		slog.WarnContext(r.Context(), "departures unavailable", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}
