package service

import "errors"

// Sentinel error kinds for the service.
var (
	ErrNoSource     = errors.New("no benchmark data source configured")
	ErrInvalidPoint = errors.New("invalid point index")
)
