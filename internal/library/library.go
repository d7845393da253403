// Package library defines the photo library provider contract and the
// asset types flowing through the analysis pipeline.
package library

import (
	"context"
	"errors"
)

// ErrPageUnavailable reports a listing page that could not be fetched.
var ErrPageUnavailable = errors.New("library: page unavailable")

// MediaKind distinguishes photos from videos.
type MediaKind string

const (
	KindPhoto MediaKind = "photo"
	KindVideo MediaKind = "video"
)

// Asset is one lightweight library entry returned by paginated listing.
type Asset struct {
	ID           string
	Kind         MediaKind
	Filename     string
	Width        int
	Height       int
	CreationTime int64   // epoch milliseconds
	Duration     float64 // seconds, videos only
}

// Location is a raw geotag carried by an asset.
type Location struct {
	Latitude  float64
	Longitude float64
}

// AssetInfo is the extended per-asset detail fetched separately from the
// listing. Network assets carry no further metadata; fetching it would
// require a paid or slow network download, so providers leave the rest
// of the struct empty when IsNetworkAsset is set.
type AssetInfo struct {
	Exif           ExifBag
	Location       *Location
	IsNetworkAsset bool
}

// PhotoLocation is a geotag tied back to its source asset. The persisted
// list is always sorted ascending by timestamp before trajectory and
// cluster derivation.
type PhotoLocation struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
}

// ListOptions controls one page request against the provider.
type ListOptions struct {
	First              int    // page size
	After              string // cursor from the previous page, empty for the first
	Kinds              []MediaKind
	SortByCreationTime bool
}

// Page is one batch of assets from the provider.
type Page struct {
	Assets      []Asset
	EndCursor   string
	HasNextPage bool
}

// Provider is the external photo library collaborator.
type Provider interface {
	// RequestPermission asks for library access. A false return with nil
	// error means access was denied; the caller must not scan.
	RequestPermission(ctx context.Context) (bool, error)

	// Assets returns one page of the library listing.
	Assets(ctx context.Context, opts ListOptions) (*Page, error)

	// AssetInfo returns extended detail for a single asset.
	AssetInfo(ctx context.Context, id string) (*AssetInfo, error)
}
