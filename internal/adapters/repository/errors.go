package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound  = errors.New("benchmark not found")
	ErrNoHistory = errors.New("no benchmark history loaded")
)
