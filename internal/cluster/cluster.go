// Package cluster finds dense groups of geotagged photos by region
// growing over a fixed radius.
package cluster

import (
	"math"
	"sort"

	"github.com/kozaktomas/photo-atlas/internal/geo"
	"github.com/kozaktomas/photo-atlas/internal/library"
)

// Defaults for dense cluster detection.
const (
	DefaultRadiusMeters = 200.0
	DefaultMinPoints    = 5
	DefaultMaxClusters  = 5
)

// Config controls one detection run.
type Config struct {
	RadiusMeters float64
	MinPoints    int
	MaxClusters  int
}

// DefaultConfig returns the stock detection parameters.
func DefaultConfig() Config {
	return Config{
		RadiusMeters: DefaultRadiusMeters,
		MinPoints:    DefaultMinPoints,
		MaxClusters:  DefaultMaxClusters,
	}
}

// BoundingBox is the axis-aligned envelope of a cluster's members.
type BoundingBox struct {
	MinLat  float64 `json:"minLat"`
	MaxLat  float64 `json:"maxLat"`
	MinLong float64 `json:"minLong"`
	MaxLong float64 `json:"maxLong"`
}

// Cluster is one dense group of photo locations.
type Cluster struct {
	Locations []library.PhotoLocation `json:"locations"`
	Box       BoundingBox             `json:"boundingBox"`
}

// Size returns the number of member locations.
func (c *Cluster) Size() int {
	return len(c.Locations)
}

// Density is members per square kilometer of bounding box, used only for
// ranking and never persisted. Degenerate boxes (a single point or a
// straight line) get a floor area so the division stays finite.
func (c *Cluster) Density() float64 {
	area := c.Box.areaKm2()
	if area < 1e-6 {
		area = 1e-6
	}
	return float64(len(c.Locations)) / area
}

// areaKm2 measures the box along its min-latitude edge (width) and
// min-longitude edge (height) with the same haversine distance the
// detector clusters by.
func (b BoundingBox) areaKm2() float64 {
	widthKm := geo.DistanceMeters(b.MinLat, b.MinLong, b.MinLat, b.MaxLong) / 1000
	heightKm := geo.DistanceMeters(b.MinLat, b.MinLong, b.MaxLat, b.MinLong) / 1000
	return widthKm * heightKm
}

// FindDense groups locations lying within cfg.RadiusMeters of each other
// and returns the clusters holding at least cfg.MinPoints members,
// sorted by size and then density, truncated to cfg.MaxClusters.
//
// Growing is greedy: each unvisited location seeds a region that absorbs
// every location within radius of any member, breadth first. A location
// joins at most one cluster; once visited it is never reconsidered, even
// when the seed's region ends up below the member floor.
func FindDense(locations []library.PhotoLocation, cfg Config) []Cluster {
	visited := make(map[string]bool, len(locations))
	// Non-nil so an empty result serializes as a JSON array, not null.
	clusters := []Cluster{}

	for _, seed := range locations {
		if visited[seed.ID] {
			continue
		}
		visited[seed.ID] = true

		members := []library.PhotoLocation{seed}
		for i := 0; i < len(members); i++ {
			current := members[i]
			for _, candidate := range locations {
				if visited[candidate.ID] {
					continue
				}
				d := geo.DistanceMeters(current.Latitude, current.Longitude, candidate.Latitude, candidate.Longitude)
				if d <= cfg.RadiusMeters {
					visited[candidate.ID] = true
					members = append(members, candidate)
				}
			}
		}

		if len(members) >= cfg.MinPoints {
			clusters = append(clusters, Cluster{
				Locations: members,
				Box:       boundingBox(members),
			})
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Size() != clusters[j].Size() {
			return clusters[i].Size() > clusters[j].Size()
		}
		return clusters[i].Density() > clusters[j].Density()
	})

	if cfg.MaxClusters > 0 && len(clusters) > cfg.MaxClusters {
		clusters = clusters[:cfg.MaxClusters]
	}
	return clusters
}

func boundingBox(members []library.PhotoLocation) BoundingBox {
	box := BoundingBox{
		MinLat:  members[0].Latitude,
		MaxLat:  members[0].Latitude,
		MinLong: members[0].Longitude,
		MaxLong: members[0].Longitude,
	}
	for _, m := range members[1:] {
		box.MinLat = math.Min(box.MinLat, m.Latitude)
		box.MaxLat = math.Max(box.MaxLat, m.Latitude)
		box.MinLong = math.Min(box.MinLong, m.Longitude)
		box.MaxLong = math.Max(box.MaxLong, m.Longitude)
	}
	return box
}
