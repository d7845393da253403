// Package immich implements the library provider against an Immich
// server's HTTP API.
package immich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kozaktomas/photo-atlas/internal/library"
)

// Immich is a client for the Immich API.
type Immich struct {
	Url       string
	parsedURL *url.URL
	apiKey    string
	client    *http.Client
}

// New creates a new Immich client. The API key comes from the server's
// account settings.
func New(rawURL, apiKey string) (*Immich, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	apiURL := strings.TrimRight(rawURL, "/") + "/api"
	parsed, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Immich URL: %w", err)
	}

	return &Immich{
		Url:       apiURL,
		parsedURL: parsed,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// resolveURL builds a full URL from the base API URL and the given path
// segments.
func (im *Immich) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return im.parsedURL.String()
	}
	return im.parsedURL.JoinPath(pathSegments...).String()
}

// RequestPermission verifies the API key against the server. A 401 or
// 403 means the key was rejected, which maps to denied access rather
// than a transport failure.
func (im *Immich) RequestPermission(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, im.resolveURL("users", "me"), nil)
	if err != nil {
		return false, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("x-api-key", im.apiKey)

	resp, err := im.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("permission check failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}
}

type searchRequest struct {
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Order string `json:"order,omitempty"`
	Type  string `json:"type,omitempty"`
}

type searchResponse struct {
	Assets struct {
		Items    []assetItem `json:"items"`
		NextPage *string     `json:"nextPage"`
	} `json:"assets"`
}

type assetItem struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	OriginalFileName string    `json:"originalFileName"`
	FileCreatedAt    time.Time `json:"fileCreatedAt"`
	Duration         string    `json:"duration"`
	ExifInfo         *struct {
		ExifImageWidth  int `json:"exifImageWidth"`
		ExifImageHeight int `json:"exifImageHeight"`
	} `json:"exifInfo"`
}

// Assets returns one page of the library listing. The cursor is the
// 1-based page number handed back by the previous call.
func (im *Immich) Assets(ctx context.Context, opts library.ListOptions) (*library.Page, error) {
	page := 1
	if opts.After != "" {
		n, err := strconv.Atoi(opts.After)
		if err != nil {
			return nil, fmt.Errorf("invalid page cursor %q: %w", opts.After, err)
		}
		page = n
	}

	reqBody := searchRequest{Page: page, Size: opts.First}
	if opts.SortByCreationTime {
		reqBody.Order = "asc"
	}
	if len(opts.Kinds) == 1 {
		reqBody.Type = assetType(opts.Kinds[0])
	}

	result, err := doPostJSON[searchResponse](ctx, im, "search/metadata", reqBody)
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}

	out := &library.Page{Assets: make([]library.Asset, 0, len(result.Assets.Items))}
	for _, item := range result.Assets.Items {
		out.Assets = append(out.Assets, toAsset(item))
	}
	if result.Assets.NextPage != nil && *result.Assets.NextPage != "" {
		out.EndCursor = *result.Assets.NextPage
		out.HasNextPage = true
	}
	return out, nil
}

type assetDetail struct {
	ID        string `json:"id"`
	IsOffline bool   `json:"isOffline"`
	ExifInfo  *struct {
		Model     *string  `json:"model"`
		LensModel *string  `json:"lensModel"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Altitude  *float64 `json:"altitude"`
		Speed     *float64 `json:"speed"`
	} `json:"exifInfo"`
}

// AssetInfo returns extended detail for a single asset. Offline assets
// map to network assets and carry no metadata.
func (im *Immich) AssetInfo(ctx context.Context, id string) (*library.AssetInfo, error) {
	detail, err := doGetJSON[assetDetail](ctx, im, "assets", id)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", id, err)
	}

	if detail.IsOffline {
		return &library.AssetInfo{IsNetworkAsset: true}, nil
	}

	info := &library.AssetInfo{}
	exif := detail.ExifInfo
	if exif == nil {
		return info, nil
	}

	info.Exif = toExifBag(exif.Model, exif.LensModel, exif.Altitude, exif.Speed)
	if exif.Latitude != nil && exif.Longitude != nil {
		info.Location = &library.Location{
			Latitude:  *exif.Latitude,
			Longitude: *exif.Longitude,
		}
	}
	return info, nil
}

// toExifBag regroups Immich's flat exifInfo into the tag groups the
// rest of the pipeline reads.
func toExifBag(model, lens *string, altitude, speed *float64) library.ExifBag {
	bag := library.ExifBag{}
	if model != nil && *model != "" {
		bag[library.GroupTIFF] = map[string]any{library.TagModel: *model}
	}
	if lens != nil && *lens != "" {
		bag[library.GroupExif] = map[string]any{library.TagLensModel: *lens}
	}
	gps := map[string]any{}
	if altitude != nil {
		gps[library.TagAltitude] = *altitude
	}
	if speed != nil {
		gps[library.TagSpeed] = *speed
	}
	if len(gps) > 0 {
		bag[library.GroupGPS] = gps
	}
	if len(bag) == 0 {
		return nil
	}
	return bag
}

func toAsset(item assetItem) library.Asset {
	asset := library.Asset{
		ID:           item.ID,
		Kind:         library.KindPhoto,
		Filename:     item.OriginalFileName,
		CreationTime: item.FileCreatedAt.UnixMilli(),
	}
	if item.Type == "VIDEO" {
		asset.Kind = library.KindVideo
		asset.Duration = parseDuration(item.Duration)
	}
	if item.ExifInfo != nil {
		asset.Width = item.ExifInfo.ExifImageWidth
		asset.Height = item.ExifInfo.ExifImageHeight
	}
	return asset
}

func assetType(kind library.MediaKind) string {
	if kind == library.KindVideo {
		return "VIDEO"
	}
	return "IMAGE"
}

// parseDuration converts Immich's "H:MM:SS.mmm" video duration into
// seconds. Malformed values count as zero length.
func parseDuration(s string) float64 {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0
	}
	hours, err1 := strconv.ParseFloat(parts[0], 64)
	minutes, err2 := strconv.ParseFloat(parts[1], 64)
	seconds, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0
	}
	return hours*3600 + minutes*60 + seconds
}

var _ library.Provider = (*Immich)(nil)
