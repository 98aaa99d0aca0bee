// Package repository holds the benchmark histories served by the API.
package repository

import (
	"context"

	"github.com/okian/benchgraph/internal/domain/bench"
)

// Summary describes one stored history.
type Summary struct {
	Platform string `json:"platform"`
	Bench    string `json:"bench"`
	ID       string `json:"id"`
	Points   int    `json:"points"`
	Tool     string `json:"tool"`
	Unit     string `json:"unit"`
}

// Store provides read access to the current benchmark histories and lets a
// loader swap them wholesale.
type Store interface {
	// Replace publishes a new snapshot. Readers never see a partial update.
	Replace(ctx context.Context, snap *bench.Snapshot) error

	// Dataset returns the history of one pair.
	// Returns ErrNotFound if the pair is unknown.
	Dataset(ctx context.Context, platform, benchName string) (bench.DataSet, error)

	// Benchmarks lists every stored history in load order.
	Benchmarks(ctx context.Context) []Summary

	// Count returns the number of stored histories.
	Count(ctx context.Context) int
}
