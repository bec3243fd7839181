// Package poller runs the board refresh loop: fetch a batch, and if it holds
// any records, replace the board with it. One tick runs immediately and then
// one per interval until the context is cancelled.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/departure-board/internal/domain"
	"github.com/pkordes/departure-board/internal/metrics"
)

const (
	// DefaultInterval is the time between the starts of two ticks.
	DefaultInterval = 60 * time.Second

	// DefaultTimeout bounds a single fetch. It is shorter than the interval
	// so a slow fetch is abandoned before the next tick is due.
	DefaultTimeout = 30 * time.Second
)

// Sink receives each batch. Apply reports whether the board changed.
type Sink interface {
	Apply(batch domain.Batch) bool
}

// Options tunes a Poller. Zero values select the defaults.
type Options struct {
	Interval time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
}

// Poller drives a Fetcher on a fixed-rate ticker and feeds a Sink.
type Poller struct {
	fetcher  Fetcher
	sink     Sink
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// New constructs a Poller.
func New(f Fetcher, s Sink, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	return &Poller{
		fetcher:  f,
		sink:     s,
		interval: opts.Interval,
		timeout:  opts.Timeout,
		log:      opts.Logger,
		metrics:  opts.Metrics,
	}
}

// Run ticks once immediately, then every interval, until ctx is done.
// Ticks never overlap. Errors from individual ticks are logged and never
// stop the loop. Run returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info("poller starting", "interval", p.interval.String(), "timeout", p.timeout.String())

	_ = p.Tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("poller stopped")
			return ctx.Err()
		case <-ticker.C:
			_ = p.Tick(ctx)
		}
	}
}

// Tick performs one fetch-and-apply cycle. On error the board is left as it
// was and the error is returned after being logged and counted.
// An empty batch is not an error.
func (p *Poller) Tick(ctx context.Context) error {
	log := p.log.With("tick_id", uuid.NewString())
	p.metrics.Ticks.Inc()

	tctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	batch, err := p.fetcher.Fetch(tctx)
	if err != nil {
		reason := metrics.ReasonFetch
		if errors.Is(err, domain.ErrDecode) {
			reason = metrics.ReasonDecode
		}
		p.metrics.TickFailures.WithLabelValues(reason).Inc()
		if ctx.Err() == nil {
			log.Warn("poll failed, keeping previous board", "reason", reason, "error", err)
		}
		return err
	}

	p.metrics.BatchRecords.Set(float64(len(batch)))
	if !p.sink.Apply(batch) {
		log.Debug("empty batch, board unchanged")
		return nil
	}

	p.metrics.LastRefresh.SetToCurrentTime()
	log.Debug("board refreshed", "records", len(batch))
	return nil
}
