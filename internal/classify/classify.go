// Package classify maps raw asset attributes to the categorical labels
// used by the stats accumulator.
package classify

import (
	"fmt"
	"path/filepath"
	"strings"
)

// fileTypeLabels maps lowercase filename extensions to display labels.
var fileTypeLabels = map[string]string{
	"jpg":  "JPEG",
	"jpeg": "JPEG",
	"png":  "PNG",
	"dng":  "RAW",
	"heic": "HEIC",
	"gif":  "GIF",
	"tiff": "TIFF",
	"bmp":  "BMP",
	"mp4":  "MP4",
	"mov":  "MOV",
	"avi":  "AVI",
	"mkv":  "MKV",
}

// FileType returns the display label for a filename's extension,
// or "Unknown" for unrecognized or missing extensions.
func FileType(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if label, ok := fileTypeLabels[ext]; ok {
		return label
	}
	return "Unknown"
}

// Orientation classifies pixel dimensions as Landscape, Portrait or Square.
func Orientation(width, height int) string {
	switch {
	case width > height:
		return "Landscape"
	case height > width:
		return "Portrait"
	default:
		return "Square"
	}
}

// AspectRatio returns the "W:H" ratio reduced to lowest terms.
func AspectRatio(width, height int) string {
	divisor := gcd(width, height)
	if divisor == 0 {
		return "0:0"
	}
	return fmt.Sprintf("%d:%d", width/divisor, height/divisor)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// TimeOfDay buckets an hour of day (0-23) into Morning (5-11),
// Afternoon (12-16), Evening (17-20) or Night (21-4).
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}
