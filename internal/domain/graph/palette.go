// Package graph turns a benchmark history into a declarative trend chart:
// colors, series data, tooltips and click navigation.
package graph

import "github.com/okian/benchgraph/internal/domain/bench"

// DefaultColor is used for the fallback tool and for empty datasets.
const DefaultColor = "#333333"

var defaultToolColors = map[bench.Tool]string{
	bench.ToolCargo:                 "#dea584",
	bench.ToolGo:                    "#00add8",
	bench.ToolBenchmarkJS:           "#f1e05a",
	bench.ToolBenchmarkLuau:         "#000080",
	bench.ToolPytest:                "#3572a5",
	bench.ToolGoogleCPP:             "#f34b7d",
	bench.ToolCatch2:                "#f34b7d",
	bench.ToolJulia:                 "#a270ba",
	bench.ToolJMH:                   "#b07219",
	bench.ToolBenchmarkDotNet:       "#178600",
	bench.ToolCustomBiggerIsBetter:  "#38ff38",
	bench.ToolCustomSmallerIsBetter: "#ff3838",
}

// Palette maps tools to display colors. It is immutable once built; the
// zero value resolves every tool to DefaultColor.
type Palette struct {
	colors   map[bench.Tool]string
	fallback string
}

// DefaultPalette returns the built-in tool color table.
func DefaultPalette() Palette {
	return NewPalette(defaultToolColors, DefaultColor)
}

// NewPalette copies colors into a new Palette. Empty color values are
// skipped and an empty fallback selects DefaultColor.
func NewPalette(colors map[bench.Tool]string, fallback string) Palette {
	p := Palette{
		colors:   make(map[bench.Tool]string, len(colors)),
		fallback: fallback,
	}
	if p.fallback == "" {
		p.fallback = DefaultColor
	}
	for tool, c := range colors {
		if c != "" {
			p.colors[tool] = c
		}
	}
	return p
}

// Override returns a copy of p with the given colors replacing or adding
// entries. An empty fallback keeps the current one.
func (p Palette) Override(colors map[bench.Tool]string, fallback string) Palette {
	merged := make(map[bench.Tool]string, len(p.colors)+len(colors))
	for tool, c := range p.colors {
		merged[tool] = c
	}
	for tool, c := range colors {
		if c != "" {
			merged[tool] = c
		}
	}
	if fallback == "" {
		fallback = p.Fallback()
	}
	return NewPalette(merged, fallback)
}

// Fallback returns the color used when no tool color applies.
func (p Palette) Fallback() string {
	if p.fallback == "" {
		return DefaultColor
	}
	return p.fallback
}

// Color resolves a tool. Unknown tools never fail; they get the fallback.
func (p Palette) Color(tool bench.Tool) string {
	if c, ok := p.colors[tool]; ok {
		return c
	}
	return p.Fallback()
}

// ColorFor resolves the series color of a dataset from its first entry.
func (p Palette) ColorFor(ds bench.DataSet) string {
	first, ok := ds.First()
	if !ok {
		return p.Fallback()
	}
	return p.Color(first.Tool)
}
