// Package stats maintains the running MediaStats accumulator for one
// library scan.
package stats

import (
	"time"

	"github.com/kozaktomas/photo-atlas/internal/classify"
	"github.com/kozaktomas/photo-atlas/internal/library"
)

// MediaStats is the running aggregate for one scan. All count maps only
// grow while a scan is in flight; the whole struct is persisted after
// every page so a consumer reading storage mid-scan sees a valid, if
// incomplete, snapshot.
type MediaStats struct {
	LocalPhotos   int `json:"localPhotos"`
	LocalVideos   int `json:"localVideos"`
	NetworkPhotos int `json:"networkPhotos"`
	NetworkVideos int `json:"networkVideos"`

	Orientations  map[string]int `json:"orientations"`
	AspectRatios  map[string]int `json:"aspectRatios"`
	FileTypes     map[string]int `json:"fileTypes"`
	CreationYears map[string]int `json:"creationYears"`
	TimeOfDay     map[string]int `json:"timeOfDay"`
	CameraModels  map[string]int `json:"cameraModels"`
	LensModels    map[string]int `json:"lensModels"`

	HighestAltitude float64 `json:"highest"`
	// LowestAltitude is nil until the first altitude is seen. A pointer
	// instead of an infinity sentinel keeps "no data yet" distinguishable
	// from a real recorded altitude of 0 across JSON round trips.
	LowestAltitude *float64 `json:"lowest"`
	FastestSpeed   float64  `json:"fastest"`

	TotalVideoDuration float64 `json:"totalVideoDuration"`
	LongestVideo       float64 `json:"longestVideo"`
}

// New returns a fresh accumulator with all maps allocated.
func New() *MediaStats {
	return &MediaStats{
		Orientations:  make(map[string]int),
		AspectRatios:  make(map[string]int),
		FileTypes:     make(map[string]int),
		CreationYears: make(map[string]int),
		TimeOfDay:     make(map[string]int),
		CameraModels:  make(map[string]int),
		LensModels:    make(map[string]int),
	}
}

// Total returns the number of assets folded into the accumulator so far.
func (s *MediaStats) Total() int {
	return s.LocalPhotos + s.LocalVideos + s.NetworkPhotos + s.NetworkVideos
}

// Accumulate folds one asset and its extended info into the accumulator
// and returns the asset's geotag if it carries one.
//
// Network assets are counted in the network tallies only; their metadata
// is never inspected since reading it would trigger a network fetch.
// Every asset increments exactly one of the four local/network counters.
func (s *MediaStats) Accumulate(asset library.Asset, info *library.AssetInfo) *library.PhotoLocation {
	if info != nil && info.IsNetworkAsset {
		if asset.Kind == library.KindPhoto {
			s.NetworkPhotos++
		} else {
			s.NetworkVideos++
		}
		return nil
	}

	if asset.Kind == library.KindPhoto {
		s.LocalPhotos++
	} else {
		s.LocalVideos++
		s.TotalVideoDuration += asset.Duration
		if asset.Duration > s.LongestVideo {
			s.LongestVideo = asset.Duration
		}
	}

	s.FileTypes[classify.FileType(asset.Filename)]++

	created := time.UnixMilli(asset.CreationTime)
	s.CreationYears[created.Format("2006")]++
	s.TimeOfDay[classify.TimeOfDay(created.Hour())]++

	s.Orientations[classify.Orientation(asset.Width, asset.Height)]++
	s.AspectRatios[classify.AspectRatio(asset.Width, asset.Height)]++

	if info == nil {
		return nil
	}

	s.accumulateExif(info.Exif)

	if info.Location != nil {
		return &library.PhotoLocation{
			ID:        asset.ID,
			Latitude:  info.Location.Latitude,
			Longitude: info.Location.Longitude,
			Timestamp: asset.CreationTime,
		}
	}
	return nil
}

// accumulateExif reads the tags the dashboard cares about. Every lookup
// treats a missing or wrong-typed value as absent.
func (s *MediaStats) accumulateExif(exif library.ExifBag) {
	if model, ok := exif.String(library.GroupTIFF, library.TagModel); ok {
		s.CameraModels[model]++
	}
	if lens, ok := exif.String(library.GroupExif, library.TagLensModel); ok {
		s.LensModels[lens]++
	}

	if altitude, ok := exif.Float(library.GroupGPS, library.TagAltitude); ok {
		if altitude > s.HighestAltitude {
			s.HighestAltitude = altitude
		}
		if s.LowestAltitude == nil || altitude < *s.LowestAltitude {
			s.LowestAltitude = &altitude
		}
	}
	if speed, ok := exif.Float(library.GroupGPS, library.TagSpeed); ok {
		if speed > s.FastestSpeed {
			s.FastestSpeed = speed
		}
	}
}
