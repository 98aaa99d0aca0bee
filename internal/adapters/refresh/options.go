package refresh

import (
	"time"

	"github.com/okian/benchgraph/pkg/logger"
)

// Option applies a configuration option to the Refresher.
type Option func(*Refresher)

// WithInterval sets how often the source is reloaded. Zero loads once.
func WithInterval(d time.Duration) Option {
	return func(r *Refresher) {
		if d >= 0 {
			r.interval = d
		}
	}
}

// WithName sets the refresher name for identification and logging.
func WithName(name string) Option {
	return func(r *Refresher) {
		if name != "" {
			r.name = name
		}
	}
}

// WithLogger sets a custom logger for the refresher.
func WithLogger(l logger.Logger) Option {
	return func(r *Refresher) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLoadOnStart controls whether Run loads before waiting for the first tick.
func WithLoadOnStart(load bool) Option {
	return func(r *Refresher) {
		r.loadOnStart = load
	}
}
