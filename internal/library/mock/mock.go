// Package mock provides an in-memory library provider for testing.
package mock

import (
	"context"
	"strconv"
	"sync"

	"github.com/kozaktomas/photo-atlas/internal/library"
)

// Provider is an in-memory library.Provider with error injection.
type Provider struct {
	mu     sync.RWMutex
	assets []library.Asset
	infos  map[string]*library.AssetInfo

	// PermissionDenied makes RequestPermission report denial.
	PermissionDenied bool

	// Track calls
	AssetInfoCalls []string

	// Error injection
	PermissionError error
	AssetsError     error
	AssetInfoError  error

	// AssetInfoErrors fails AssetInfo for the listed asset IDs only.
	AssetInfoErrors map[string]error

	// AssetsErrorOnPage fails the listing once that many pages have been
	// served. Zero value disables the injection.
	AssetsErrorOnPage int

	assetsCalls int
}

// NewProvider creates an empty mock provider.
func NewProvider() *Provider {
	return &Provider{infos: make(map[string]*library.AssetInfo)}
}

// AddAsset registers an asset and its extended info.
func (m *Provider) AddAsset(asset library.Asset, info *library.AssetInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = append(m.assets, asset)
	if info != nil {
		m.infos[asset.ID] = info
	}
}

// RequestPermission reports the configured permission outcome.
func (m *Provider) RequestPermission(ctx context.Context) (bool, error) {
	if m.PermissionError != nil {
		return false, m.PermissionError
	}
	return !m.PermissionDenied, nil
}

// Assets returns one page of registered assets. The cursor is the
// offset of the next unread asset.
func (m *Provider) Assets(ctx context.Context, opts library.ListOptions) (*library.Page, error) {
	if m.AssetsError != nil {
		return nil, m.AssetsError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AssetsErrorOnPage > 0 && m.assetsCalls >= m.AssetsErrorOnPage {
		return nil, library.ErrPageUnavailable
	}
	m.assetsCalls++

	start := 0
	if opts.After != "" {
		n, err := strconv.Atoi(opts.After)
		if err != nil {
			return nil, err
		}
		start = n
	}
	if start >= len(m.assets) {
		return &library.Page{}, nil
	}
	end := start + opts.First
	if end > len(m.assets) {
		end = len(m.assets)
	}

	return &library.Page{
		Assets:      m.assets[start:end],
		EndCursor:   strconv.Itoa(end),
		HasNextPage: end < len(m.assets),
	}, nil
}

// AssetInfo returns the registered info for id, or an empty info when
// none was registered.
func (m *Provider) AssetInfo(ctx context.Context, id string) (*library.AssetInfo, error) {
	if m.AssetInfoError != nil {
		return nil, m.AssetInfoError
	}
	if err := m.AssetInfoErrors[id]; err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.AssetInfoCalls = append(m.AssetInfoCalls, id)
	info := m.infos[id]
	m.mu.Unlock()

	if info == nil {
		return &library.AssetInfo{}, nil
	}
	return info, nil
}

var _ library.Provider = (*Provider)(nil)
