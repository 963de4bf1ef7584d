package report

import (
	"io"
	"math"
	"time"

	"github.com/bytedance/sonic"

	"github.com/okian/shotzone/internal/domain/efg"
)

// JSONRenderer encodes the report as a single JSON document.
type JSONRenderer struct {
	Indent bool
}

type jsonReport struct {
	RunID       string        `json:"run_id"`
	Source      string        `json:"source"`
	GeneratedAt string        `json:"generated_at"`
	Shots       int           `json:"shots"`
	Attempts    []jsonTeam    `json:"attempt_percentages"`
	EFG         []jsonZoneEFG `json:"efg"`
}

type jsonTeam struct {
	Team   string             `json:"team"`
	Total  int                `json:"total"`
	Shares map[string]float64 `json:"shares"`
}

type jsonZoneEFG struct {
	Label    string   `json:"label"`
	Team     string   `json:"team"`
	Region   string   `json:"region"`
	Made     int      `json:"made"`
	Attempts int      `json:"attempts"`
	EFG      *float64 `json:"efg"`
}

// Render implements Renderer. Proportions and eFG are rounded to three
// decimals; an undefined eFG is encoded as null.
func (j JSONRenderer) Render(w io.Writer, r *Report) error {
	out := jsonReport{
		RunID:    r.RunID,
		Source:   r.Source,
		Shots:    r.Shots,
		Attempts: make([]jsonTeam, 0, len(r.Distribution)),
		EFG:      make([]jsonZoneEFG, 0, len(r.EFG)),
	}
	if !r.GeneratedAt.IsZero() {
		out.GeneratedAt = r.GeneratedAt.UTC().Format(time.RFC3339)
	}

	for _, d := range r.Distribution {
		t := jsonTeam{Team: d.Team, Total: d.Total, Shares: make(map[string]float64, len(d.Shares))}
		for _, s := range d.Shares {
			t.Shares[s.Region.String()] = round3(s.Proportion)
		}
		out.Attempts = append(out.Attempts, t)
	}

	for _, z := range r.EFG {
		row := jsonZoneEFG{
			Label:    Label(z.Team, z.Region),
			Team:     z.Team,
			Region:   z.Region.String(),
			Made:     z.Made,
			Attempts: z.Attempts,
		}
		if !efg.IsUndefined(z.EFG) {
			v := round3(z.EFG)
			row.EFG = &v
		}
		out.EFG = append(out.EFG, row)
	}

	enc := sonic.ConfigStd.NewEncoder(w)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
