package metrics

import (
	"errors"
)

// ErrRegister wraps collector registration failures returned by Register.
var ErrRegister = errors.New("metrics: register collector")
