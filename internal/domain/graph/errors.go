package graph

import "errors"

// Sentinel kinds for graph errors.
var (
	// ErrChartUnavailable reports that no charting capability is wired.
	ErrChartUnavailable = errors.New("chart capability unavailable")
)
