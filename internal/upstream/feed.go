// Package upstream reads the departures feed: a CSV document served over
// HTTP with one header row naming the StatusRecord fields.
// No business logic lives here, only transport and column mapping.
package upstream

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkordes/departure-board/internal/domain"
)

// DefaultURL is the public commuter rail departures feed.
const DefaultURL = "http://developer.mbta.com/lib/gtrtfs/Departures.csv"

// maxFeedBytes caps how much of a response body is read.
const maxFeedBytes = 4 << 20

// Feed defines how the service layer obtains the current departures.
type Feed interface {
	// Fetch downloads and parses the feed. Errors wrap domain.ErrUpstream
	// for transport problems and domain.ErrDecode for unreadable CSV.
	Fetch(ctx context.Context) (domain.Batch, error)
}

// httpFeed is the HTTP+CSV implementation of Feed.
type httpFeed struct {
	url    string
	client *http.Client
}

// NewFeed constructs a Feed reading url with client.
// A nil client means http.DefaultClient.
func NewFeed(url string, client *http.Client) Feed {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFeed{url: url, client: client}
}

// Fetch issues a GET for the feed and parses the body.
func (f *httpFeed) Fetch(ctx context.Context) (domain.Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("upstream.Feed.Fetch: %w: %v", domain.ErrUpstream, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream.Feed.Fetch: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream.Feed.Fetch: %w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	batch, err := ParseCSV(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("upstream.Feed.Fetch: %w", err)
	}
	return batch, nil
}

// ParseCSV reads a departures CSV. Columns are matched by header name,
// case-insensitively, so their order does not matter and unknown columns are
// ignored. Missing columns and unparseable integers yield zero values.
// A document with only a header (or nothing at all) is an empty batch.
func ParseCSV(r io.Reader) (domain.Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.Batch{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", domain.ErrDecode, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		// Some producers prefix the first column with a UTF-8 BOM.
		name = strings.TrimPrefix(name, "\ufeff")
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	batch := domain.Batch{}
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrDecode, line, err)
		}

		get := func(col string) string {
			i, ok := idx[strings.ToLower(col)]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		batch = append(batch, domain.StatusRecord{
			TimeStamp:     domain.ParseInt(get("TimeStamp")),
			Origin:        get("Origin"),
			Trip:          get("Trip"),
			Destination:   get("Destination"),
			ScheduledTime: domain.ParseInt(get("ScheduledTime")),
			Lateness:      domain.ParseInt(get("Lateness")),
			Track:         get("Track"),
			Status:        get("Status"),
		})
	}
	return batch, nil
}
