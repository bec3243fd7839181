// Package service contains the business logic behind the departure board API.
// Services orchestrate feed calls and normalise results; no transport or
// parsing code lives here.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/departure-board/internal/domain"
	"github.com/pkordes/departure-board/internal/upstream"
)

// DepartureService serves the current batch of departures.
type DepartureService struct {
	feed    upstream.Feed
	latency prometheus.Observer
}

// NewDepartureService constructs a DepartureService backed by feed.
// latency may be nil; when set it observes each fetch duration in seconds.
func NewDepartureService(feed upstream.Feed, latency prometheus.Observer) *DepartureService {
	return &DepartureService{feed: feed, latency: latency}
}

// Current fetches the feed and returns its records in feed order.
// The result is never nil so it always encodes as a JSON array.
func (s *DepartureService) Current(ctx context.Context) (domain.Batch, error) {
	start := time.Now()
	batch, err := s.feed.Fetch(ctx)
	if s.latency != nil {
		s.latency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("service.DepartureService.Current: %w", err)
	}
	if batch == nil {
		batch = domain.Batch{}
	}
	return batch, nil
}
