package source

import (
	"io"

	"github.com/okian/shotzone/pkg/logger"
	"github.com/okian/shotzone/pkg/metrics"
)

// Option configures a CSVSource.
type Option func(*CSVSource)

// WithLogger sets the logger used for load progress.
func WithLogger(l logger.Logger) Option {
	return func(s *CSVSource) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager rows are counted on.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *CSVSource) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithStdin replaces the reader used when the path is "-".
func WithStdin(r io.Reader) Option {
	return func(s *CSVSource) {
		if r != nil {
			s.stdin = r
		}
	}
}
