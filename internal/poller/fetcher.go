package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkordes/departure-board/internal/domain"
)

// maxResponseBytes caps how much of a poll response is read.
const maxResponseBytes = 4 << 20

// Fetcher retrieves one batch of status records.
type Fetcher interface {
	Fetch(ctx context.Context) (domain.Batch, error)
}

// httpFetcher POSTs to a poll endpoint and decodes the JSON array it returns.
type httpFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher returns a Fetcher that polls url with client.
// A nil client means http.DefaultClient; the caller's context bounds each
// request, so the client itself needs no timeout.
func NewHTTPFetcher(url string, client *http.Client) Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{url: url, client: client}
}

// Fetch issues POST <url> with an empty body. The response is read as a
// string and then decoded explicitly, whatever its Content-Type says.
func (f *httpFetcher) Fetch(ctx context.Context) (domain.Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("poller.Fetcher.Fetch: %w: %v", domain.ErrUpstream, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poller.Fetcher.Fetch: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("poller.Fetcher.Fetch: %w: read body: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("poller.Fetcher.Fetch: %w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	batch, err := DecodeBatch(string(raw))
	if err != nil {
		return nil, fmt.Errorf("poller.Fetcher.Fetch: %w", err)
	}
	return batch, nil
}

// DecodeBatch parses a JSON array of status records. A JSON null decodes to
// an empty batch. Missing or malformed fields inside a record default to
// zero values; a number in a text field becomes its decimal text. Only a
// payload that is not a single array of objects fails.
func DecodeBatch(payload string) (domain.Batch, error) {
	var batch domain.Batch
	if err := json.Unmarshal([]byte(payload), &batch); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	if batch == nil {
		batch = domain.Batch{}
	}
	return batch, nil
}
