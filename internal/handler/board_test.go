package handler_test

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/departure-board/internal/board"
	"github.com/pkordes/departure-board/internal/domain"
	"github.com/pkordes/departure-board/internal/format"
	"github.com/pkordes/departure-board/internal/handler"
)

func newBoardHandler(t *testing.T, batch domain.Batch) http.Handler {
	t.Helper()
	store := board.NewStore(time.UTC, format.DateStyleLegacy)
	store.Apply(batch)
	return handler.NewServer(nil, store, time.Minute).Routes()
}

// ---- GET / -----------------------------------------------------------------

func TestGetBoardPage_RendersRows(t *testing.T) {
	h := newBoardHandler(t, departuresFixture())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	rows := doc.Find(".departures-table tr")
	require.Equal(t, 3, rows.Length())
	assert.Equal(t, "NORTH STATION", rows.Eq(1).Find("td.origin").Text())
	assert.Equal(t, "TBD", rows.Eq(2).Find("td.class").Text())
	assert.Equal(t, "LATE 2 MIN", rows.Eq(2).Find("td.status").Text())
	assert.NotEmpty(t, doc.Find(".day").Text())
}

func TestGetBoardPage_EmptyBoard(t *testing.T) {
	h := newBoardHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find(".departures-table tr").Length())
}

// ---- GET /board ------------------------------------------------------------

func TestGetBoard_JSON(t *testing.T) {
	h := newBoardHandler(t, departuresFixture())

	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var b domain.Board
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))
	require.Len(t, b.Rows, 2)
	assert.Equal(t, "P101", b.Rows[0].Trip)
	assert.Equal(t, "P202", b.Rows[1].Trip)
	assert.False(t, b.UpdatedAt.IsZero())
}

func TestGetBoard_JSON_EmptyRowsIsArray(t *testing.T) {
	h := newBoardHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rows":[]`)
}

func TestGetBoard_CSV(t *testing.T) {
	h := newBoardHandler(t, departuresFixture())

	req := httptest.NewRequest(http.MethodGet, "/board?format=csv", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"scheduled_time", "origin", "trip", "destination", "track", "status"}, records[0])
	assert.Equal(t, []string{"1:05 PM", "NORTH STATION", "P101", "LOWELL", "5", "ON TIME"}, records[1])
	assert.Equal(t, "LATE 2 MIN", records[2][5])
}

// ---- GET /openapi.yaml -----------------------------------------------------

func TestGetOpenAPI(t *testing.T) {
	h := handler.NewHealthHandler().Routes()

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/poll")
	assert.Contains(t, paths, "/board")
}
