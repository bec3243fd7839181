package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/departure-board/internal/domain"
	"github.com/pkordes/departure-board/internal/handler"
	"github.com/pkordes/departure-board/internal/poller"
)

// mockDepartureServicer is a test double for handler.DepartureServicer.
type mockDepartureServicer struct {
	current func(ctx context.Context) (domain.Batch, error)
}

func (m *mockDepartureServicer) Current(ctx context.Context) (domain.Batch, error) {
	return m.current(ctx)
}

// compile-time check: mockDepartureServicer must satisfy handler.DepartureServicer.
var _ handler.DepartureServicer = (*mockDepartureServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func newPollHandler(svc handler.DepartureServicer) http.Handler {
	return handler.NewServer(svc, nil, time.Minute).Routes()
}

func departuresFixture() domain.Batch {
	return domain.Batch{
		{TimeStamp: 1748781000, Origin: "North Station", Trip: "P101", Destination: "Lowell", ScheduledTime: 1748783100, Track: "5", Status: "On Time"},
		{TimeStamp: 1748781000, Origin: "South Station", Trip: "P202", Destination: "Providence", ScheduledTime: 1748783400, Lateness: 125, Status: "Delayed"},
	}
}

// ---- POST /poll ------------------------------------------------------------

func TestPostPoll_200(t *testing.T) {
	svc := &mockDepartureServicer{
		current: func(_ context.Context) (domain.Batch, error) { return departuresFixture(), nil },
	}

	req := httptest.NewRequest(http.MethodPost, "/poll", nil)
	rec := httptest.NewRecorder()
	newPollHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	// The board's own decoder must accept what /poll produces.
	batch, err := poller.DecodeBatch(rec.Body.String())
	require.NoError(t, err)
	assert.Equal(t, departuresFixture(), batch)
}

func TestPostPoll_200_EmptyIsArray(t *testing.T) {
	svc := &mockDepartureServicer{
		current: func(_ context.Context) (domain.Batch, error) { return domain.Batch{}, nil },
	}

	req := httptest.NewRequest(http.MethodPost, "/poll", nil)
	rec := httptest.NewRecorder()
	newPollHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Must be a JSON array, not null.
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestPostPoll_502_Upstream(t *testing.T) {
	svc := &mockDepartureServicer{
		current: func(_ context.Context) (domain.Batch, error) {
			return nil, fmt.Errorf("service: %w: status 503", domain.ErrUpstream)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/poll", nil)
	rec := httptest.NewRecorder()
	newPollHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "upstream_unavailable", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "503")
}

func TestPostPoll_502_Decode(t *testing.T) {
	svc := &mockDepartureServicer{
		current: func(_ context.Context) (domain.Batch, error) { return nil, domain.ErrDecode },
	}

	req := httptest.NewRequest(http.MethodPost, "/poll", nil)
	rec := httptest.NewRecorder()
	newPollHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPostPoll_500_Unexpected(t *testing.T) {
	svc := &mockDepartureServicer{
		current: func(_ context.Context) (domain.Batch, error) { return nil, errors.New("boom") },
	}

	req := httptest.NewRequest(http.MethodPost, "/poll", nil)
	rec := httptest.NewRecorder()
	newPollHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "internal_error", resp.Error.Code)
}

func TestPostPoll_413_OversizedBody(t *testing.T) {
	svc := &mockDepartureServicer{
		current: func(_ context.Context) (domain.Batch, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/poll", strings.NewReader(strings.Repeat("x", 4096)))
	rec := httptest.NewRecorder()
	newPollHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestPoll_GetNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/poll", nil)
	rec := httptest.NewRecorder()
	newPollHandler(&mockDepartureServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
