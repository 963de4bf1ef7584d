// Package report renders a finished shot-zone report as text or JSON.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/okian/shotzone/internal/domain/aggregate"
	"github.com/okian/shotzone/internal/domain/model"
)

// Report is everything a renderer needs. It holds no logic of its own.
type Report struct {
	RunID        string
	Source       string
	GeneratedAt  time.Time
	Shots        int
	Distribution []aggregate.TeamDistribution
	EFG          []aggregate.ZoneEFG
}

// Renderer writes a Report to w.
type Renderer interface {
	Render(w io.Writer, r *Report) error
}

// TeamCode shortens a team name to its last word, so "Team A" becomes "A".
func TeamCode(team string) string {
	fields := strings.Fields(team)
	if len(fields) == 0 {
		return team
	}
	return fields[len(fields)-1]
}

// Label builds the team+zone identifier, e.g. A3PC.
func Label(team string, region model.Region) string {
	return TeamCode(team) + region.String()
}

// ErrUnknownFormat is returned by NewRenderer for unsupported formats.
var ErrUnknownFormat = errors.New("unknown report format")

// NewRenderer returns the renderer for format ("text" or "json").
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return TextRenderer{}, nil
	case "json":
		return JSONRenderer{Indent: true}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
