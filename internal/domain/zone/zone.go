// Package zone classifies shots into court regions from their coordinates.
package zone

import (
	"math"

	"github.com/okian/shotzone/internal/domain/model"
)

// Court geometry in feet, measured from the basket.
const (
	// CornerMaxY is the highest y at which a shot still counts as a corner.
	CornerMaxY = 7.8
	// CornerMinX is the |x| a corner shot must exceed.
	CornerMinX = 22.0
	// ArcRadius is the distance an above-the-break shot must exceed.
	ArcRadius = 23.75
)

// Classify returns the region of a shot taken at (x, y). Rules are evaluated
// in order and the first match wins:
//
//  1. y <= 7.8 and |x| > 22.0          -> 3PC
//  2. distance > 23.75 and y > 7.8     -> 3PNC
//  3. otherwise                        -> 2PT
//
// A baseline shot (y <= 7.8, |x| <= 22.0) is 2PT at any distance.
func Classify(x, y float64) model.Region {
	if y <= CornerMaxY && math.Abs(x) > CornerMinX {
		return model.RegionCornerThree
	}
	if Distance(x, y) > ArcRadius && y > CornerMaxY {
		return model.RegionNonCornerThree
	}
	return model.RegionTwo
}

// Distance is the straight-line distance of (x, y) from the basket.
func Distance(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// ClassifyShot classifies a single record.
func ClassifyShot(s model.ShotRecord) model.ClassifiedShot {
	return model.ClassifiedShot{
		Team:   s.Team,
		Made:   s.Made,
		Region: Classify(s.X, s.Y),
	}
}

// ClassifyAll returns a new slice with every record classified, in input
// order. The input is not modified.
func ClassifyAll(shots []model.ShotRecord) []model.ClassifiedShot {
	out := make([]model.ClassifiedShot, len(shots))
	for i, s := range shots {
		out[i] = ClassifyShot(s)
	}
	return out
}
