// Package shotgen generates synthetic shot logs for demos and load tests.
package shotgen

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/shotzone/internal/domain/model"
	"github.com/okian/shotzone/pkg/logger"
)

// Limits and defaults.
const (
	MaxTeams      = 26
	DefaultShots  = 1000
	DefaultTeams  = 2
	DefaultSeed   = 42
	ctxCheckEvery = 1024
)

// Shot mix and make rates per region, roughly a modern NBA game.
const (
	shareTwo    = 0.60
	shareCorner = 0.10

	makeTwo       = 0.52
	makeCorner    = 0.39
	makeNonCorner = 0.35
)

// Court sampling bounds in feet.
const (
	twoMaxRadius       = 22.0
	cornerMinX         = 22.1
	cornerMaxX         = 25.0
	cornerMinY         = -4.0
	cornerMaxY         = 7.8
	nonCornerMinRadius = 23.8
	nonCornerMaxRadius = 30.0
	nonCornerMinY      = 7.9
)

// ErrInvalidConfig is returned for out-of-range generator settings.
var ErrInvalidConfig = errors.New("invalid generator config")

// Config controls a generation run.
type Config struct {
	Shots int
	Teams int
	Seed  int64
}

// Shot is a generated shot with a stable identifier.
type Shot struct {
	ID string
	model.ShotRecord
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.Shots <= 0 {
		return fmt.Errorf("%w: shots must be positive, got %d", ErrInvalidConfig, c.Shots)
	}
	if c.Teams < 1 || c.Teams > MaxTeams {
		return fmt.Errorf("%w: teams must be in [1, %d], got %d", ErrInvalidConfig, MaxTeams, c.Teams)
	}
	return nil
}

// TeamName returns the display name of the i-th team: Team A, Team B, ...
func TeamName(i int) string {
	return "Team " + string(rune('A'+i))
}

// Generate produces cfg.Shots shots. The same seed always yields the same log.
func Generate(ctx context.Context, cfg Config) ([]Shot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Get().Debug(ctx, "generating shots",
		logger.Int("shots", cfg.Shots),
		logger.Int("teams", cfg.Teams),
		logger.Any("seed", cfg.Seed),
	)

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic synthetic data
	shots := make([]Shot, cfg.Shots)
	for i := range shots {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("context cancelled during generation: %w", err)
			}
		}
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("shot id: %w", err)
		}
		shots[i] = Shot{ID: id.String(), ShotRecord: generateSingleShot(rng, TeamName(i%cfg.Teams))}
	}
	return shots, nil
}

func generateSingleShot(rng *rand.Rand, team string) model.ShotRecord {
	var x, y, makeRate float64
	switch p := rng.Float64(); {
	case p < shareTwo:
		r := rng.Float64() * twoMaxRadius
		theta := rng.Float64() * math.Pi
		x, y = r*math.Cos(theta), r*math.Sin(theta)
		makeRate = makeTwo
	case p < shareTwo+shareCorner:
		x = cornerMinX + rng.Float64()*(cornerMaxX-cornerMinX)
		if rng.Intn(2) == 0 {
			x = -x
		}
		y = cornerMinY + rng.Float64()*(cornerMaxY-cornerMinY)
		makeRate = makeCorner
	default:
		r := nonCornerMinRadius + rng.Float64()*(nonCornerMaxRadius-nonCornerMinRadius)
		lo := math.Asin(nonCornerMinY / r)
		theta := lo + rng.Float64()*(math.Pi-2*lo)
		x, y = r*math.Cos(theta), r*math.Sin(theta)
		makeRate = makeNonCorner
	}
	return model.ShotRecord{
		Team: team,
		Made: rng.Float64() < makeRate,
		X:    round2(x),
		Y:    round2(y),
	}
}

// round2 keeps generated coordinates readable. Rounding can nudge a shot
// across a zone boundary; the classifier decides the region, not the
// generator.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Write generates a log and writes it to w as CSV with a
// shot_id,team,fgmade,x,y header.
func Write(ctx context.Context, w io.Writer, cfg Config) error {
	shots, err := Generate(ctx, cfg)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"shot_id", "team", "fgmade", "x", "y"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range shots {
		made := "0"
		if s.Made {
			made = "1"
		}
		rec := []string{
			s.ID,
			s.Team,
			made,
			strconv.FormatFloat(s.X, 'f', 2, 64),
			strconv.FormatFloat(s.Y, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write shot %s: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
