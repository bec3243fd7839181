package handler

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"net/http"

	"github.com/pkordes/departure-board/internal/board"
	"github.com/pkordes/departure-board/internal/domain"
)

// csvHeaders defines the column names written as the first row of a CSV board.
var csvHeaders = []string{"scheduled_time", "origin", "trip", "destination", "track", "status"}

// GetBoardPage handles GET /.
// It renders the current board as an HTML page that reloads itself.
func (s *Server) GetBoardPage(w http.ResponseWriter, r *http.Request) {
	// Render into a buffer so a template failure can still become a clean 500.
	var buf bytes.Buffer
	if err := board.WritePage(&buf, s.board.Snapshot(), s.refresh); err != nil {
		slog.ErrorContext(r.Context(), "render board page", "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// GetBoard handles GET /board.
// It returns the board view model as JSON, or just the rows as CSV with
// ?format=csv.
func (s *Server) GetBoard(w http.ResponseWriter, r *http.Request) {
	b := s.board.Snapshot()
	w.Header().Set("Cache-Control", "no-store")

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, b.Rows)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// writeCSV encodes rows under csvHeaders.
func writeCSV(w http.ResponseWriter, rows []domain.Row) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write([]string{row.ScheduledTime, row.Origin, row.Trip, row.Destination, row.Track, row.Status})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="board.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
