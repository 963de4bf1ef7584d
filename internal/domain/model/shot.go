// Package model contains domain models passed between layers.
package model

import "fmt"

// Region is a court area a shot is taken from.
type Region string

// Court regions.
const (
	RegionTwo            Region = "2PT"  // inside the arc
	RegionCornerThree    Region = "3PC"  // corner three
	RegionNonCornerThree Region = "3PNC" // above-the-break three
)

// Regions lists every region in report order.
var Regions = []Region{RegionTwo, RegionCornerThree, RegionNonCornerThree}

// String implements fmt.Stringer.
func (r Region) String() string { return string(r) }

// IsThree reports whether every make in r is worth three points.
func (r Region) IsThree() bool {
	return r == RegionCornerThree || r == RegionNonCornerThree
}

// ParseRegion converts a region code back into a Region.
func ParseRegion(s string) (Region, error) {
	for _, r := range Regions {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// ShotRecord is one row of the shot log. X and Y are offsets in feet from
// the basket.
type ShotRecord struct {
	Team string  `validate:"required"`
	Made bool    // field goal made
	X    float64 `validate:"finite"`
	Y    float64 `validate:"finite"`
}

// ClassifiedShot is a ShotRecord after zone classification. Coordinates are
// not carried over.
type ClassifiedShot struct {
	Team   string
	Made   bool
	Region Region
}
