// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/benchgraph/internal/adapters/chart"
	"github.com/okian/benchgraph/internal/adapters/refresh"
	"github.com/okian/benchgraph/internal/adapters/repository"
	"github.com/okian/benchgraph/internal/domain/bench"
	"github.com/okian/benchgraph/internal/domain/graph"
	"github.com/okian/benchgraph/pkg/logger"
	"github.com/okian/benchgraph/pkg/metrics"
)

// Render outcomes recorded in metrics.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

const refresherShutdownTimeout = 5 * time.Second

// Service implements the API dependencies for the benchmark graphs.
type Service struct {
	mu sync.RWMutex

	// Core components
	source    refresh.Loader
	store     repository.Store
	charter   graph.Charter
	renderer  *graph.Renderer
	refresher *refresh.Refresher

	// Configuration
	palette         graph.Palette
	height          int
	refreshInterval time.Duration

	// State
	started   bool
	runCancel context.CancelFunc

	// Logging
	logger logger.Logger
}

// New constructs a Service. Without WithCharter the Chart.js charter is used.
func New(opts ...Option) *Service {
	s := &Service{
		store:           repository.NewMemStore(),
		palette:         graph.DefaultPalette(),
		height:          graph.DefaultHeight,
		refreshInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.charter == nil {
		if c, err := chart.New(); err == nil {
			s.charter = c
		} else {
			s.logger.Warn(context.Background(), "chart.js charter unavailable", logger.Error(err))
		}
	}

	ropts := []graph.Option{graph.WithPalette(s.palette), graph.WithHeight(s.height)}
	if s.charter != nil {
		ropts = append(ropts, graph.WithCharter(s.charter))
	}
	s.renderer = graph.NewRenderer(ropts...)
	return s
}

// Start loads the data source once and keeps refreshing it in the
// background. A failed first load is logged; the service then serves an
// empty set until a refresh succeeds.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.source == nil {
		return ErrNoSource
	}

	s.logger.Info(ctx, "starting benchmark graph service...",
		logger.String("source", s.source.Name()),
		logger.Duration("refreshInterval", s.refreshInterval),
	)

	s.refresher = refresh.New(s.source, s.store,
		refresh.WithInterval(s.refreshInterval),
		refresh.WithLoadOnStart(false),
	)
	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "initial load failed, serving empty set", logger.Error(err))
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.runCancel = cancel
	go s.refresher.Run(runCtx)

	s.started = true
	s.logger.Info(ctx, "benchmark graph service started",
		logger.Int("benchmarks", s.store.Count(ctx)),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refresherShutdownTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping benchmark graph service...")

	if err := s.refresher.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "refresher shutdown failed", logger.Error(err))
	}
	s.runCancel()

	s.started = false
	s.logger.Info(ctx, "benchmark graph service stopped")
}

// Reload loads the source immediately.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.RLock()
	r := s.refresher
	s.mu.RUnlock()
	if r == nil {
		if s.source == nil {
			return ErrNoSource
		}
		r = refresh.New(s.source, s.store)
	}
	return r.Refresh(ctx)
}

// Benchmarks lists every available chart.
func (s *Service) Benchmarks(ctx context.Context) []repository.Summary {
	return s.store.Benchmarks(ctx)
}

// Configure returns the chart configuration of one history.
func (s *Service) Configure(ctx context.Context, platform, benchName string) (graph.Config, error) {
	ds, err := s.store.Dataset(ctx, platform, benchName)
	if err != nil {
		return graph.Config{}, err
	}
	return s.renderer.Configure(platform, benchName, ds), nil
}

// Render draws the chart of one history.
func (s *Service) Render(ctx context.Context, platform, benchName string) (graph.Artifact, error) {
	start := time.Now()
	ds, err := s.store.Dataset(ctx, platform, benchName)
	if err != nil {
		metrics.RecordRender(outcomeNotFound, msSince(start), 0)
		return graph.Artifact{}, err
	}

	art, err := s.renderer.Render(ctx, platform, benchName, ds)
	if err != nil {
		metrics.RecordRender(outcomeError, msSince(start), ds.Len())
		metrics.RecordErrorByComponent("renderer", "render_error")
		s.logger.Error(ctx, "render failed",
			logger.String("id", graph.GraphID(platform, benchName)),
			logger.Error(err),
		)
		return graph.Artifact{}, err
	}

	metrics.RecordRender(outcomeOK, msSince(start), ds.Len())
	s.logger.Debug(ctx, "rendered graph",
		logger.String("id", art.ID),
		logger.Int("points", ds.Len()),
	)
	return art, nil
}

// Click resolves a click on point index of one chart and hands the commit
// URL to nav. It reports whether a navigation was requested.
func (s *Service) Click(ctx context.Context, platform, benchName string, index int, nav graph.Navigator) (bool, error) {
	if index < 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidPoint, index)
	}
	ds, err := s.store.Dataset(ctx, platform, benchName)
	if err != nil {
		return false, err
	}
	opened := graph.NewInteractions(ds, nav).Click(ctx, []graph.ActiveElement{{Index: index}})
	metrics.RecordNavigation(opened)
	return opened, nil
}

// Dataset returns the raw history of one chart.
func (s *Service) Dataset(ctx context.Context, platform, benchName string) (bench.DataSet, error) {
	return s.store.Dataset(ctx, platform, benchName)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"chartHeight":     s.height,
		"refreshInterval": s.refreshInterval.String(),
	}
	if s.source != nil {
		stats["source"] = s.source.Name()
	}

	summaries := s.store.Benchmarks(ctx)
	points := 0
	for _, sum := range summaries {
		points += sum.Points
	}
	stats["benchmarks"] = len(summaries)
	stats["dataPoints"] = points

	if s.refresher != nil {
		rs := s.refresher.Stats()
		stats["loads"] = rs.Loads
		stats["loadFailures"] = rs.Failures
		if rs.LastError != "" {
			stats["lastError"] = rs.LastError
		}
		if !rs.LastSuccess.IsZero() {
			stats["lastSuccess"] = rs.LastSuccess.UTC().Format(time.RFC3339)
		}
	}

	metrics.UpdateBenchmarksTotal(len(summaries))
	metrics.UpdateDataPointsTotal(points)
	return stats
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
