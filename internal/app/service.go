// Package service runs the shot-zone report pipeline: load, classify,
// aggregate, render.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/okian/shotzone/internal/adapters/report"
	"github.com/okian/shotzone/internal/adapters/source"
	"github.com/okian/shotzone/internal/domain/aggregate"
	"github.com/okian/shotzone/internal/domain/zone"
	"github.com/okian/shotzone/pkg/logger"
	"github.com/okian/shotzone/pkg/metrics"
)

// Metric stage labels.
const (
	stageLoad     = "load"
	stageValidate = "validate"
	stageRender   = "render"
)

// Service runs one report per call. It keeps no state between runs.
type Service struct {
	expectedTeams int
	logger        logger.Logger
	metrics       *metrics.Manager
	now           func() time.Time
	newRunID      func() string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager results are published to.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithExpectedTeams rejects inputs whose distinct team count differs from
// n. Zero disables the check.
func WithExpectedTeams(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.expectedTeams = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRunIDGenerator overrides how run IDs are minted.
func WithRunIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newRunID = gen
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		metrics:  metrics.Default(),
		now:      time.Now,
		newRunID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build loads the shot log from src and computes the report.
func (s *Service) Build(ctx context.Context, src source.Source) (*report.Report, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	log := s.log()
	start := s.now()
	runID := s.newRunID()

	records, err := src.Load(ctx)
	if err != nil {
		s.metrics.RecordReportError(stageLoad)
		return nil, fmt.Errorf("load shots: %w", err)
	}
	if len(records) == 0 {
		s.metrics.RecordReportError(stageValidate)
		return nil, ErrNoShots
	}

	shots := zone.ClassifyAll(records)
	for _, shot := range shots {
		s.metrics.RecordShotClassified(shot.Region.String())
	}

	counts := aggregate.Tally(shots)
	teams := counts.Teams()
	if s.expectedTeams > 0 && len(teams) != s.expectedTeams {
		s.metrics.RecordReportError(stageValidate)
		return nil, fmt.Errorf("%w: want %d, got %d %v", ErrTeamCount, s.expectedTeams, len(teams), teams)
	}

	rep := &report.Report{
		RunID:        runID,
		Source:       sourceName(src),
		GeneratedAt:  start,
		Shots:        counts.Shots(),
		Distribution: counts.Distribution(),
		EFG:          counts.EFG(),
	}
	s.publish(rep)

	elapsed := s.now().Sub(start)
	s.metrics.RecordReportDuration(float64(elapsed) / float64(time.Millisecond))
	log.Info(ctx, "report built",
		logger.String("run_id", runID),
		logger.String("source", rep.Source),
		logger.Int("shots", rep.Shots),
		logger.Int("teams", len(teams)),
		logger.Any("elapsed", elapsed),
	)
	return rep, nil
}

// Run builds the report and writes it to w with r.
func (s *Service) Run(ctx context.Context, src source.Source, r report.Renderer, w io.Writer) (*report.Report, error) {
	if w == nil || r == nil {
		return nil, ErrNilOutput
	}
	rep, err := s.Build(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := r.Render(w, rep); err != nil {
		s.metrics.RecordReportError(stageRender)
		return nil, fmt.Errorf("%w: %v", ErrRenderFail, err)
	}
	return rep, nil
}

func (s *Service) publish(rep *report.Report) {
	s.metrics.SetTeamCount(len(rep.Distribution))
	for _, z := range rep.EFG {
		s.metrics.SetZoneAttempts(z.Team, z.Region.String(), z.Attempts)
		s.metrics.SetZoneEFG(z.Team, z.Region.String(), z.EFG)
	}
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		s.logger = logger.Named("report")
	}
	return s.logger
}

func sourceName(src source.Source) string {
	if p, ok := src.(interface{ Path() string }); ok {
		return p.Path()
	}
	return fmt.Sprintf("memory:%T", src)
}
