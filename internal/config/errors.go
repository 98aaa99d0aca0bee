package config

import "errors"

// Error kinds wrapped by Load and Validate.
var (
	// ErrInvalidConfig marks a value Validate rejected.
	ErrInvalidConfig = errors.New("config: invalid value")
	// ErrLoadConfig marks a file or environment source that could not be read.
	ErrLoadConfig = errors.New("config: load failed")
)
