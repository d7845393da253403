package library

import "strconv"

// ExifBag maps tag group -> tag -> value, mirroring the nested EXIF
// dictionaries returned by platform media libraries. Values come from
// decoded JSON, so numeric tags may arrive as float64, int or string.
type ExifBag map[string]map[string]any

// Common tag groups and tags read by the stats accumulator.
const (
	GroupTIFF = "TIFF"
	GroupExif = "Exif"
	GroupGPS  = "GPS"

	TagModel     = "Model"
	TagLensModel = "LensModel"
	TagAltitude  = "Altitude"
	TagSpeed     = "Speed"
)

// String looks up a string-valued tag. Missing groups, missing tags and
// wrong-typed values all report absence instead of failing.
func (e ExifBag) String(group, tag string) (string, bool) {
	v, ok := e.lookup(group, tag)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Float looks up a numeric tag, converting the loosely-typed values a
// JSON decode can produce. Anything unconvertible reports absence.
func (e ExifBag) Float(group, tag string) (float64, bool) {
	v, ok := e.lookup(group, tag)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func (e ExifBag) lookup(group, tag string) (any, bool) {
	if e == nil {
		return nil, false
	}
	tags, ok := e[group]
	if !ok || tags == nil {
		return nil, false
	}
	v, ok := tags[tag]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
