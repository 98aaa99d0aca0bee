package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrInvalidData = errors.New("invalid benchmark data")
	ErrFetch       = errors.New("fetch benchmark data failed")
)
