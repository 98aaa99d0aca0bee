package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/benchgraph/internal/domain/bench"
	"github.com/okian/benchgraph/internal/domain/graph"
	"github.com/okian/benchgraph/pkg/logger"
	"github.com/okian/benchgraph/pkg/metrics"
)

// MemStore is an in-memory Store. Writers build a snapshot off to the side
// and publish it with one atomic pointer swap; reads are lock-free.
type MemStore struct {
	current atomic.Pointer[state]
	logger  logger.Logger
}

type state struct {
	snap      *bench.Snapshot
	summaries []Summary
	loadedAt  time.Time
}

// NewMemStore creates an empty store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(&state{snap: bench.NewSnapshot()})
	return s
}

// Replace publishes snap. A nil snapshot is rejected.
func (s *MemStore) Replace(ctx context.Context, snap *bench.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("repository.replace: %w", ErrNoHistory)
	}
	start := time.Now()
	next := &state{
		snap:      snap,
		summaries: summarize(snap),
		loadedAt:  start,
	}
	s.current.Store(next)

	metrics.UpdateBenchmarksTotal(snap.Len())
	metrics.UpdateDataPointsTotal(snap.Points())
	metrics.RecordSnapshotPublish(float64(time.Since(start).Microseconds())/1000, start)
	if s.logger != nil {
		s.logger.Debug(ctx, "published benchmark snapshot",
			logger.Int("benchmarks", snap.Len()),
			logger.Int("points", snap.Points()),
		)
	}
	return nil
}

// Dataset returns the history of (platform, benchName).
func (s *MemStore) Dataset(_ context.Context, platform, benchName string) (bench.DataSet, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	ds, ok := s.current.Load().snap.Dataset(platform, benchName)
	if !ok {
		return nil, fmt.Errorf("%s: %w", graph.GraphID(platform, benchName), ErrNotFound)
	}
	return ds, nil
}

// Benchmarks lists every stored history.
func (s *MemStore) Benchmarks(_ context.Context) []Summary {
	cur := s.current.Load().summaries
	out := make([]Summary, len(cur))
	copy(out, cur)
	return out
}

// Count returns the number of stored histories.
func (s *MemStore) Count(_ context.Context) int {
	return s.current.Load().snap.Len()
}

// LoadedAt returns when the current snapshot was published; zero before the
// first Replace.
func (s *MemStore) LoadedAt() time.Time {
	return s.current.Load().loadedAt
}

func summarize(snap *bench.Snapshot) []Summary {
	keys := snap.Keys()
	out := make([]Summary, 0, len(keys))
	for _, k := range keys {
		ds, _ := snap.Dataset(k.Platform, k.Bench)
		sum := Summary{
			Platform: k.Platform,
			Bench:    k.Bench,
			ID:       graph.GraphID(k.Platform, k.Bench),
			Points:   len(ds),
			Tool:     string(bench.ToolUnknown),
		}
		if first, ok := ds.First(); ok {
			sum.Tool = string(first.Tool)
			sum.Unit = first.Bench.Unit
		}
		out = append(out, sum)
	}
	return out
}
