// Package main is the entry point for the departure board server.
// Its sole responsibility is wiring dependencies together, starting the HTTP
// server and the poll loop, and shutting both down cleanly.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/departure-board/internal/board"
	"github.com/pkordes/departure-board/internal/config"
	"github.com/pkordes/departure-board/internal/format"
	"github.com/pkordes/departure-board/internal/handler"
	"github.com/pkordes/departure-board/internal/metrics"
	"github.com/pkordes/departure-board/internal/middleware"
	"github.com/pkordes/departure-board/internal/poller"
	"github.com/pkordes/departure-board/internal/service"
	"github.com/pkordes/departure-board/internal/upstream"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Default logger until ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	m := metrics.New()

	// --- Departures feed --------------------------------------------------
	feed := upstream.NewFeed(cfg.UpstreamURL, &http.Client{Timeout: cfg.FetchTimeout})
	departures := service.NewDepartureService(feed, m.UpstreamLatency)

	// --- Board ------------------------------------------------------------
	style, _ := format.ParseDateStyle(cfg.DateStyle)
	store := board.NewStore(cfg.Location(), style)

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → SlogLogger → Recoverer → CORS, as in every service.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	r.Handle("/metrics", m.Handler())
	r.Mount("/", handler.NewServer(departures, store, poller.DefaultInterval).Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Listen before starting the poller so its first tick can reach /poll
	// when it points back at this server.
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", srv.Addr, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Poll loop --------------------------------------------------------
	p := poller.New(poller.NewHTTPFetcher(cfg.PollURL, nil), store, poller.Options{
		Timeout: cfg.FetchTimeout,
		Logger:  logger.With("component", "poller"),
		Metrics: m,
	})
	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		_ = p.Run(ctx)
	}()

	// Wait for SIGINT/SIGTERM, then stop polling and give in-flight requests
	// up to 15 seconds to complete.
	<-ctx.Done()
	slog.Info("shutting down")
	<-pollDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
