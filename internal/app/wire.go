package service

import (
	"fmt"

	"github.com/okian/benchgraph/internal/adapters/chart"
	"github.com/okian/benchgraph/internal/adapters/source"
	"github.com/okian/benchgraph/internal/config"
	"github.com/okian/benchgraph/internal/domain/bench"
	"github.com/okian/benchgraph/internal/domain/graph"
	"github.com/okian/benchgraph/pkg/logger"
)

// FromConfig builds a Service wired as cfg describes: data source, tool
// colors, chart height, refresh interval and a standalone Chart.js charter.
// opts are applied last.
func FromConfig(cfg *config.Config, opts ...Option) (*Service, error) {
	src, err := source.New(cfg.DataFile, cfg.DataURL,
		source.WithRetryMax(cfg.HTTPRetryMax),
		source.WithLogger(logger.Get().Named("source")),
	)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	charter, err := chart.New(
		chart.WithStandalone(true),
		chart.WithScriptURL(cfg.ChartScriptURL),
	)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	base := []Option{
		WithSource(src),
		WithCharter(charter),
		WithPalette(Palette(cfg.ToolColors, cfg.DefaultColor)),
		WithHeight(cfg.ChartHeight),
		WithRefreshInterval(cfg.RefreshInterval()),
	}
	return New(append(base, opts...)...), nil
}

// Palette layers configured tool colors over the built-in table.
func Palette(colors map[string]string, fallback string) graph.Palette {
	overrides := make(map[bench.Tool]string, len(colors))
	for tool, c := range colors {
		overrides[bench.Tool(tool)] = c
	}
	return graph.DefaultPalette().Override(overrides, fallback)
}
