// Package bench contains the benchmark history model shared across layers.
//
// Values in this package are read-only inputs produced upstream; nothing here
// mutates a DataSet after construction.
package bench

// Tool names the benchmarking harness that produced a measurement.
type Tool string

// Known tools. ToolUnknown is the fallback when no tool can be determined.
const (
	ToolCargo                 Tool = "cargo"
	ToolGo                    Tool = "go"
	ToolBenchmarkJS           Tool = "benchmarkjs"
	ToolBenchmarkLuau         Tool = "benchmarkluau"
	ToolPytest                Tool = "pytest"
	ToolGoogleCPP             Tool = "googlecpp"
	ToolCatch2                Tool = "catch2"
	ToolJulia                 Tool = "julia"
	ToolJMH                   Tool = "jmh"
	ToolBenchmarkDotNet       Tool = "benchmarkdotnet"
	ToolCustomBiggerIsBetter  Tool = "customBiggerIsBetter"
	ToolCustomSmallerIsBetter Tool = "customSmallerIsBetter"
	ToolUnknown               Tool = "_"
)

var knownTools = map[Tool]struct{}{
	ToolCargo:                 {},
	ToolGo:                    {},
	ToolBenchmarkJS:           {},
	ToolBenchmarkLuau:         {},
	ToolPytest:                {},
	ToolGoogleCPP:             {},
	ToolCatch2:                {},
	ToolJulia:                 {},
	ToolJMH:                   {},
	ToolBenchmarkDotNet:       {},
	ToolCustomBiggerIsBetter:  {},
	ToolCustomSmallerIsBetter: {},
}

// ParseTool maps a raw identifier onto the closed Tool set.
// Unrecognized identifiers map to ToolUnknown.
func ParseTool(s string) Tool {
	t := Tool(s)
	if _, ok := knownTools[t]; ok {
		return t
	}
	return ToolUnknown
}

// Known reports whether t is one of the named tools (not the fallback).
func (t Tool) Known() bool {
	_, ok := knownTools[t]
	return ok
}

// Committer identifies who committed a revision.
type Committer struct {
	Username string `json:"username"`
}

// Commit is a single historical revision.
type Commit struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
	Committer Committer `json:"committer"`
}

// Measurement is one benchmark result. Range is nil when no uncertainty
// annotation was reported.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Range *string `json:"range,omitempty"`
}

// Entry pairs a commit with the measurement taken at it.
type Entry struct {
	Commit Commit      `json:"commit"`
	Bench  Measurement `json:"bench"`
	Tool   Tool        `json:"tool"`
}

// DataSet is the history of one (platform, benchmark) pair, oldest first.
// The order defines the x-axis of the rendered chart.
type DataSet []Entry

// At returns the entry at index i, or false when i is out of range.
func (ds DataSet) At(i int) (Entry, bool) {
	if i < 0 || i >= len(ds) {
		return Entry{}, false
	}
	return ds[i], true
}

// First returns the oldest entry, or false for an empty dataset.
func (ds DataSet) First() (Entry, bool) {
	return ds.At(0)
}

// Len returns the number of entries.
func (ds DataSet) Len() int { return len(ds) }

// RangeOf returns a pointer suitable for Measurement.Range. An empty string
// yields nil.
func RangeOf(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
