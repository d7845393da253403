// Package trajectory reduces an ordered location history to the points
// that represent actual movement.
package trajectory

import (
	"github.com/kozaktomas/photo-atlas/internal/geo"
	"github.com/kozaktomas/photo-atlas/internal/library"
)

// DefaultThresholdMeters is the minimum distance between two retained
// trajectory points.
const DefaultThresholdMeters = 20.0

// Simplify filters a timestamp-ordered location list down to points at
// least thresholdMeters apart from the last retained one. The first
// point is always kept. Input order is preserved and the input slice is
// never mutated.
func Simplify(locations []library.PhotoLocation, thresholdMeters float64) []library.PhotoLocation {
	if len(locations) <= 1 {
		return locations
	}

	simplified := make([]library.PhotoLocation, 0, len(locations))
	simplified = append(simplified, locations[0])
	last := locations[0]

	for _, loc := range locations[1:] {
		d := geo.DistanceMeters(last.Latitude, last.Longitude, loc.Latitude, loc.Longitude)
		if d >= thresholdMeters {
			simplified = append(simplified, loc)
			last = loc
		}
	}

	return simplified
}
