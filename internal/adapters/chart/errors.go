package chart

import "errors"

// Sentinel kinds for chart errors.
var (
	ErrTemplate = errors.New("chart template failed")
)
