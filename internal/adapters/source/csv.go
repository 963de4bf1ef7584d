package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/shotzone/internal/domain/model"
	"github.com/okian/shotzone/pkg/logger"
	"github.com/okian/shotzone/pkg/metrics"
)

// Required CSV columns. Header matching is case-insensitive and extra
// columns are ignored.
const (
	ColumnTeam   = "team"
	ColumnFGMade = "fgmade"
	ColumnX      = "x"
	ColumnY      = "y"
)

// StdinPath makes CSVSource read from standard input.
const StdinPath = "-"

var requiredColumns = []string{ColumnTeam, ColumnFGMade, ColumnX, ColumnY}

// CSVSource reads a delimited shot log from a file.
type CSVSource struct {
	path     string
	stdin    io.Reader
	logger   logger.Logger
	metrics  *metrics.Manager
	validate *validator.Validate
}

// NewCSVSource creates a source for path.
func NewCSVSource(path string, opts ...Option) *CSVSource {
	s := &CSVSource{
		path:     path,
		stdin:    os.Stdin,
		metrics:  metrics.Default(),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the configured input path.
func (s *CSVSource) Path() string { return s.path }

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context) ([]model.ShotRecord, error) {
	if s.logger == nil {
		s.logger = logger.Named("source")
	}

	var r io.Reader
	if s.path == StdinPath {
		r = s.stdin
	} else {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpenSource, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	shots, err := s.read(ctx, r)
	if err != nil {
		return nil, err
	}
	s.metrics.AddShotsLoaded(len(shots))
	s.logger.Debug(ctx, "shot log loaded", logger.String("path", s.path), logger.Int("shots", len(shots)))
	return shots, nil
}

func (s *CSVSource) read(ctx context.Context, r io.Reader) ([]model.ShotRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input, no header", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrOpenSource, err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}
	// Rows may be shorter or longer than the header; columnIndex bounds
	// are checked per row.
	cr.FieldsPerRecord = -1

	var shots []model.ShotRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.metrics.RecordRowRejected()
			return nil, fmt.Errorf("%w: %v", ErrInvalidRow, err)
		}
		line, _ := cr.FieldPos(0)
		shot, err := parseRow(rec, index)
		if err == nil {
			err = s.validate.StructCtx(ctx, shot)
		}
		if err != nil {
			s.metrics.RecordRowRejected()
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRow, line, err)
		}
		shots = append(shots, shot)
	}
	return shots, nil
}

// ReadCSV parses a shot log from r with a default source configuration.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.ShotRecord, error) {
	return NewCSVSource(StdinPath, WithMetrics(metrics.NewManager())).read(ctx, r)
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRow(rec []string, index map[string]int) (model.ShotRecord, error) {
	field := func(name string) (string, error) {
		i := index[name]
		if i >= len(rec) {
			return "", fmt.Errorf("column %q missing from row", name)
		}
		return strings.TrimSpace(rec[i]), nil
	}

	team, err := field(ColumnTeam)
	if err != nil {
		return model.ShotRecord{}, err
	}
	madeRaw, err := field(ColumnFGMade)
	if err != nil {
		return model.ShotRecord{}, err
	}
	made, err := ParseMade(madeRaw)
	if err != nil {
		return model.ShotRecord{}, err
	}
	x, err := parseCoord(field(ColumnX))
	if err != nil {
		return model.ShotRecord{}, fmt.Errorf("x: %w", err)
	}
	y, err := parseCoord(field(ColumnY))
	if err != nil {
		return model.ShotRecord{}, fmt.Errorf("y: %w", err)
	}
	return model.ShotRecord{Team: team, Made: made, X: x, Y: y}, nil
}

func parseCoord(raw string, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(raw, 64)
}

// ParseMade reads a boolean-like made flag: 1/0, true/false, t/f, yes/no
// (any case) and the float forms 1.0/0.0.
func ParseMade(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "1.0", "true", "t", "yes", "y":
		return true, nil
	case "0", "0.0", "false", "f", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("fgmade: unrecognised value %q", raw)
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}
