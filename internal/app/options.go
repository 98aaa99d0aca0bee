package service

import (
	"time"

	"github.com/okian/benchgraph/internal/adapters/refresh"
	"github.com/okian/benchgraph/internal/adapters/repository"
	"github.com/okian/benchgraph/internal/domain/graph"
	"github.com/okian/benchgraph/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where benchmark histories are loaded from.
func WithSource(src refresh.Loader) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore sets the repository holding the loaded histories.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCharter sets the charting capability used by Render.
func WithCharter(c graph.Charter) Option {
	return func(s *Service) {
		if c != nil {
			s.charter = c
		}
	}
}

// WithPalette sets the tool color table.
func WithPalette(p graph.Palette) Option {
	return func(s *Service) {
		s.palette = p
	}
}

// WithHeight sets the chart height in pixels.
func WithHeight(px int) Option {
	return func(s *Service) {
		if px > 0 {
			s.height = px
		}
	}
}

// WithRefreshInterval sets how often the source is reloaded. Zero loads once.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.refreshInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
