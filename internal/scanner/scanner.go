// Package scanner drives the full library analysis: paginated listing,
// concurrent metadata fetching, running stats and the derived geo
// results.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kozaktomas/photo-atlas/internal/cluster"
	"github.com/kozaktomas/photo-atlas/internal/library"
	"github.com/kozaktomas/photo-atlas/internal/stats"
	"github.com/kozaktomas/photo-atlas/internal/store"
	"github.com/kozaktomas/photo-atlas/internal/trajectory"
)

var (
	// ErrAlreadyRunning is returned by Start while a scan is in flight.
	ErrAlreadyRunning = errors.New("scanner: scan already running")

	// ErrPermissionDenied is returned when the provider rejects library
	// access.
	ErrPermissionDenied = errors.New("scanner: library access denied")
)

// Scan phases reported through Status.
const (
	PhaseIdle       = ""
	PhaseScanning   = "scanning"
	PhaseTrajectory = "trajectory"
	PhaseClusters   = "clusters"
	PhaseDone       = "done"
	PhaseError      = "error"
)

// Config bundles the tunables for one scan.
type Config struct {
	BatchSize   int
	MaxMedia    int
	Concurrency int

	TrajectoryThresholdMeters float64

	ClusterRadiusMeters float64
	ClusterMinPoints    int
	ClusterMaxClusters  int
}

// DefaultConfig returns the stock scan parameters.
func DefaultConfig() Config {
	return Config{
		BatchSize:                 50,
		MaxMedia:                  5000,
		Concurrency:               8,
		TrajectoryThresholdMeters: trajectory.DefaultThresholdMeters,
		ClusterRadiusMeters:       cluster.DefaultRadiusMeters,
		ClusterMinPoints:          cluster.DefaultMinPoints,
		ClusterMaxClusters:        cluster.DefaultMaxClusters,
	}
}

// normalize fills unusable values with defaults.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.MaxMedia <= 0 {
		c.MaxMedia = def.MaxMedia
	}
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.TrajectoryThresholdMeters <= 0 {
		c.TrajectoryThresholdMeters = def.TrajectoryThresholdMeters
	}
	if c.ClusterRadiusMeters <= 0 {
		c.ClusterRadiusMeters = def.ClusterRadiusMeters
	}
	if c.ClusterMinPoints <= 0 {
		c.ClusterMinPoints = def.ClusterMinPoints
	}
	if c.ClusterMaxClusters <= 0 {
		c.ClusterMaxClusters = def.ClusterMaxClusters
	}
	return c
}

// Status is a snapshot of the scanner state.
type Status struct {
	RunID        string `json:"runId,omitempty"`
	IsProcessing bool   `json:"isProcessing"`
	Processed    int    `json:"processed"`
	Phase        string `json:"phase"`
	Error        string `json:"error,omitempty"`
	CapReached   bool   `json:"capReached"`
}

// Result summarizes one completed scan.
type Result struct {
	Stats            *stats.MediaStats
	Locations        int
	TrajectoryPoints int
	Clusters         int
	CapReached       bool
}

// Scanner runs scans against a provider and persists results to a
// store. One Scanner allows at most one scan at a time.
type Scanner struct {
	provider library.Provider
	store    store.Store
	cfg      Config
	log      zerolog.Logger

	// OnProgress, when set, is called after every processed asset with
	// the running total. Set it before the first Start or Run.
	OnProgress func(processed int)

	mu     sync.Mutex
	status Status
}

// New creates a scanner. Zero config values fall back to defaults.
func New(provider library.Provider, st store.Store, cfg Config, log zerolog.Logger) *Scanner {
	return &Scanner{
		provider: provider,
		store:    st,
		cfg:      cfg.normalize(),
		log:      log,
	}
}

// Status returns a snapshot of the current scanner state.
func (s *Scanner) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Start launches a scan in the background after a synchronous
// permission check, and returns the run ID. A second Start while a scan
// is in flight fails with ErrAlreadyRunning.
func (s *Scanner) Start(ctx context.Context) (string, error) {
	runID, err := s.begin(ctx)
	if err != nil {
		return "", err
	}

	// The scan must outlive the request that triggered it.
	go func() {
		_, err := s.run(context.WithoutCancel(ctx))
		if err != nil {
			s.log.Error().Err(err).Str("run_id", runID).Msg("scan failed")
		}
	}()

	return runID, nil
}

// Run performs a full scan synchronously.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	if _, err := s.begin(ctx); err != nil {
		return nil, err
	}
	return s.run(ctx)
}

// begin checks permission and flips the scanner into the running state.
func (s *Scanner) begin(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.status.IsProcessing {
		s.mu.Unlock()
		return "", ErrAlreadyRunning
	}
	s.status.IsProcessing = true
	s.mu.Unlock()

	granted, err := s.provider.RequestPermission(ctx)
	if err != nil {
		s.fail(fmt.Errorf("permission check: %w", err))
		return "", fmt.Errorf("permission check: %w", err)
	}
	if !granted {
		s.fail(ErrPermissionDenied)
		return "", ErrPermissionDenied
	}

	runID := uuid.NewString()
	s.mu.Lock()
	s.status = Status{
		RunID:        runID,
		IsProcessing: true,
		Phase:        PhaseScanning,
	}
	s.mu.Unlock()

	s.log.Info().Str("run_id", runID).Msg("scan started")
	return runID, nil
}

func (s *Scanner) run(ctx context.Context) (*Result, error) {
	st := stats.New()
	// Non-nil so an empty result persists as a JSON array, not null.
	locations := []library.PhotoLocation{}

	cursor := ""
	processed := 0
	capReached := false

	for {
		batch := s.cfg.BatchSize
		if remaining := s.cfg.MaxMedia - processed; remaining < batch {
			batch = remaining
		}
		if batch <= 0 {
			capReached = true
			break
		}

		page, err := s.provider.Assets(ctx, library.ListOptions{
			First:              batch,
			After:              cursor,
			SortByCreationTime: true,
		})
		if err != nil {
			err = fmt.Errorf("list assets after %q: %w", cursor, err)
			s.fail(err)
			return nil, err
		}

		infos := s.fetchInfos(ctx, page.Assets)

		// Merge serially so the accumulator needs no locking. Assets
		// whose info fetch failed contribute nothing.
		for i, asset := range page.Assets {
			if infos[i] != nil {
				if loc := st.Accumulate(asset, infos[i]); loc != nil {
					locations = append(locations, *loc)
				}
			}
			processed++
			if s.OnProgress != nil {
				s.OnProgress(processed)
			}
		}

		sort.Slice(locations, func(i, j int) bool {
			return locations[i].Timestamp < locations[j].Timestamp
		})

		// Persist after every page so a crash loses at most one page.
		// A failed persist is worth a retry on the next page, not an
		// aborted scan.
		s.persist(ctx, store.KeyMediaStats, st)
		s.persist(ctx, store.KeyPhotoLocations, locations)

		s.setProcessed(processed)

		if !page.HasNextPage {
			break
		}
		cursor = page.EndCursor
	}

	s.setPhase(PhaseTrajectory)
	simplified := trajectory.Simplify(locations, s.cfg.TrajectoryThresholdMeters)
	s.persist(ctx, store.KeyTrajectory, simplified)

	s.setPhase(PhaseClusters)
	clusters := cluster.FindDense(locations, cluster.Config{
		RadiusMeters: s.cfg.ClusterRadiusMeters,
		MinPoints:    s.cfg.ClusterMinPoints,
		MaxClusters:  s.cfg.ClusterMaxClusters,
	})
	s.persist(ctx, store.KeyDenseClusters, clusters)

	s.mu.Lock()
	s.status.IsProcessing = false
	s.status.Phase = PhaseDone
	s.status.CapReached = capReached
	s.mu.Unlock()

	s.log.Info().
		Int("assets", processed).
		Int("locations", len(locations)).
		Int("trajectory_points", len(simplified)).
		Int("clusters", len(clusters)).
		Bool("cap_reached", capReached).
		Msg("scan finished")

	return &Result{
		Stats:            st,
		Locations:        len(locations),
		TrajectoryPoints: len(simplified),
		Clusters:         len(clusters),
		CapReached:       capReached,
	}, nil
}

// assetResult carries one worker's fetch back to the merging goroutine.
type assetResult struct {
	index int
	info  *library.AssetInfo
	err   error
}

// fetchInfos loads extended info for every asset of a page with a
// bounded worker pool. A failed fetch is logged and leaves its slot
// nil; the caller skips those assets.
func (s *Scanner) fetchInfos(ctx context.Context, assets []library.Asset) []*library.AssetInfo {
	resultsChan := make(chan assetResult, len(assets))
	semaphore := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup

	for i := range assets {
		wg.Add(1)
		go func(idx int, a library.Asset) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				resultsChan <- assetResult{index: idx, err: ctx.Err()}
				return
			}

			info, err := s.provider.AssetInfo(ctx, a.ID)
			if err != nil {
				resultsChan <- assetResult{index: idx, err: fmt.Errorf("asset %s: %w", a.ID, err)}
				return
			}
			resultsChan <- assetResult{index: idx, info: info}
		}(i, assets[i])
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	infos := make([]*library.AssetInfo, len(assets))
	for r := range resultsChan {
		if r.err != nil {
			s.log.Warn().Err(r.err).Msg("failed to read asset info, skipping asset")
			continue
		}
		infos[r.index] = r.info
	}
	return infos
}

func (s *Scanner) persist(ctx context.Context, key string, v any) {
	if err := store.SaveJSON(ctx, s.store, key, v); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to persist result")
	}
}

func (s *Scanner) setProcessed(n int) {
	s.mu.Lock()
	s.status.Processed = n
	s.mu.Unlock()
}

func (s *Scanner) setPhase(phase string) {
	s.mu.Lock()
	s.status.Phase = phase
	s.mu.Unlock()
}

// fail records an aborted scan. Results persisted before the failure
// stay in the store.
func (s *Scanner) fail(err error) {
	s.mu.Lock()
	s.status.IsProcessing = false
	s.status.Phase = PhaseError
	s.status.Error = err.Error()
	s.mu.Unlock()
}
