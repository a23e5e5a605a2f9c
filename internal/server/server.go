// Package server wires config into the client, the range aggregator, the service and the HTTP facade.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/nba-totals/internal/config"
	"github.com/maxviazov/nba-totals/internal/handler"
	"github.com/maxviazov/nba-totals/internal/metrics"
	"github.com/maxviazov/nba-totals/internal/nbaapi"
	"github.com/maxviazov/nba-totals/internal/rangefetch"
	"github.com/maxviazov/nba-totals/internal/service"
)

// Stack is the set of domain components every front end needs.
type Stack struct {
	Client  *nbaapi.Client
	Service service.StatsService
	Metrics *metrics.Recorder
}

// NewStack builds the upstream client, aggregator and service from cfg. rec may be nil.
func NewStack(cfg *config.Config, logger zerolog.Logger, rec *metrics.Recorder) *Stack {
	client := nbaapi.NewClient(nbaapi.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		Timeout:   cfg.Upstream.Timeout,
		UserAgent: cfg.Upstream.UserAgent,
		MaxPages:  cfg.Upstream.MaxPages,
		Logger:    logger,
		Metrics:   rec,
	})
	agg := rangefetch.New(client, logger, rec)
	return &Stack{
		Client:  client,
		Service: service.NewStatsService(client, agg, logger),
		Metrics: rec,
	}
}

type Server struct {
	cfg  *config.Config
	log  zerolog.Logger
	http *http.Server
}

// New assembles the HTTP server. Metrics are collected only when enabled in cfg.
func New(cfg *config.Config, logger zerolog.Logger) *Server {
	var rec *metrics.Recorder
	if cfg.Metrics.Enabled {
		rec = metrics.NewRecorder()
	}
	stack := NewStack(cfg, logger, rec)

	gin.SetMode(cfg.App.GinMode)
	engine := handler.NewEngine(handler.EngineOptions{Logger: logger, Metrics: rec, MetricsPath: cfg.Metrics.Path})
	handler.Register(engine, stack.Client, stack.Service)

	return &Server{
		cfg: cfg,
		log: logger.With().Str("module", "server").Logger(),
		http: &http.Server{
			Addr:         ":" + strconv.Itoa(cfg.App.Port),
			Handler:      engine,
			ReadTimeout:  cfg.App.ReadTimeout,
			WriteTimeout: cfg.App.WriteTimeout,
		},
	}
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is canceled, then shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.http.Addr).Msg("http server starting")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.App.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.log.Info().Msg("shutdown complete")
	return nil
}
