// Package refresh keeps the repository in sync with the benchmark data source.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/benchgraph/internal/domain/bench"
	"github.com/okian/benchgraph/pkg/logger"
	"github.com/okian/benchgraph/pkg/metrics"
)

// Load outcomes recorded in metrics.
const (
	statusOK    = "ok"
	statusError = "error"
)

// Loader produces a fresh snapshot. source.Source satisfies it.
type Loader interface {
	Load(ctx context.Context) (*bench.Snapshot, error)
	Name() string
}

// Publisher accepts a snapshot. repository.Store satisfies it.
type Publisher interface {
	Replace(ctx context.Context, snap *bench.Snapshot) error
}

// Stats summarizes refresher activity.
type Stats struct {
	Loads       int64     `json:"loads"`
	Failures    int64     `json:"failures"`
	LastError   string    `json:"lastError,omitempty"`
	LastSuccess time.Time `json:"lastSuccess"`
}

// Refresher reloads the source on start and then every interval. A failed
// load leaves the published snapshot untouched.
type Refresher struct {
	loader      Loader
	store       Publisher
	interval    time.Duration
	name        string
	loadOnStart bool

	loads    atomic.Int64
	failures atomic.Int64

	mu          sync.RWMutex
	lastErr     error
	lastSuccess time.Time

	started  atomic.Bool
	stopOnce sync.Once
	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New creates a refresher moving snapshots from loader to store.
func New(loader Loader, store Publisher, opts ...Option) *Refresher {
	r := &Refresher{
		loader:      loader,
		store:       store,
		name:        "refresh",
		loadOnStart: true,
		shutdown:    make(chan struct{}),
		done:        make(chan struct{}),
		logger:      logger.Get().Named("refresh"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.name != "refresh" {
		r.logger = r.logger.Named(r.name)
	}
	return r
}

// Refresh performs one load and publish.
func (r *Refresher) Refresh(ctx context.Context) error {
	start := time.Now()
	snap, err := r.loader.Load(ctx)
	if err == nil {
		err = r.store.Replace(ctx, snap)
	}
	latency := float64(time.Since(start).Milliseconds())
	r.loads.Add(1)

	if err != nil {
		r.failures.Add(1)
		r.mu.Lock()
		r.lastErr = err
		r.mu.Unlock()
		metrics.RecordSourceLoad(r.loader.Name(), statusError, latency)
		metrics.RecordErrorByComponent("refresh", "load_error")
		metrics.RecordErrorByType("load_error", "medium")
		r.logger.Error(ctx, "refresh failed",
			logger.String("source", r.loader.Name()),
			logger.Error(err),
		)
		return fmt.Errorf("refresh %s: %w", r.loader.Name(), err)
	}

	r.mu.Lock()
	r.lastErr = nil
	r.lastSuccess = time.Now()
	r.mu.Unlock()
	metrics.RecordSourceLoad(r.loader.Name(), statusOK, latency)
	r.logger.Info(ctx, "benchmark data loaded",
		logger.String("source", r.loader.Name()),
		logger.Int("histories", snap.Len()),
		logger.Int("points", snap.Points()),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

// Run loads once unless disabled, then reloads every interval until ctx is canceled or
// Shutdown is called.
func (r *Refresher) Run(ctx context.Context) {
	r.started.Store(true)
	defer close(r.done)

	if r.loadOnStart {
		_ = r.Refresh(ctx)
	}

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.shutdown:
			return
		case <-tick:
			_ = r.Refresh(ctx)
		}
	}
}

// Shutdown stops the loop and waits for it to exit.
func (r *Refresher) Shutdown(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.shutdown) })
	if !r.started.Load() {
		return nil
	}

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		r.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Stats returns a point-in-time view of refresher activity.
func (r *Refresher) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := Stats{
		Loads:       r.loads.Load(),
		Failures:    r.failures.Load(),
		LastSuccess: r.lastSuccess,
	}
	if r.lastErr != nil {
		s.LastError = r.lastErr.Error()
	}
	return s
}
