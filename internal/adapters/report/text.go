package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/okian/shotzone/internal/domain/efg"
)

// Undefined is printed in place of an eFG value for a zone with no attempts.
const Undefined = "undefined"

// TextRenderer prints the two-block console report.
type TextRenderer struct{}

// Render implements Renderer.
func (TextRenderer) Render(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Attempt Percentages:")
	for _, d := range r.Distribution {
		parts := make([]string, 0, len(d.Shares))
		for _, s := range d.Shares {
			parts = append(parts, fmt.Sprintf("%s %.3f", s.Region, s.Proportion))
		}
		fmt.Fprintf(bw, "%s: %s\n", d.Team, strings.Join(parts, " | "))
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "EFG Values:")
	for _, z := range r.EFG {
		fmt.Fprintf(bw, "%s: %s\n", Label(z.Team, z.Region), FormatEFG(z.EFG))
	}

	return bw.Flush()
}

// FormatEFG renders v to three decimals, or Undefined.
func FormatEFG(v float64) string {
	if efg.IsUndefined(v) {
		return Undefined
	}
	return fmt.Sprintf("%.3f", v)
}
