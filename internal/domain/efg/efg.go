// Package efg computes effective field-goal percentage.
package efg

import (
	"math"

	"github.com/okian/shotzone/internal/domain/model"
)

// Compute returns (fgm + 0.5*threesMade) / fga. A zone with no attempts has
// no defined eFG and yields NaN.
func Compute(fgm, fga, threesMade int) float64 {
	if fga == 0 {
		return math.NaN()
	}
	return (float64(fgm) + 0.5*float64(threesMade)) / float64(fga)
}

// ForZone computes eFG for a single region, where every make in a
// three-point region is a three and no make in 2PT is.
func ForZone(region model.Region, made, attempts int) float64 {
	threes := 0
	if region.IsThree() {
		threes = made
	}
	return Compute(made, attempts, threes)
}

// IsUndefined reports whether v is the undefined marker.
func IsUndefined(v float64) bool {
	return math.IsNaN(v)
}
