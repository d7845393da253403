package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-atlas/internal/config"
	"github.com/kozaktomas/photo-atlas/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the library and compute all analysis results",
	Long: `Scan walks the whole Immich library page by page, accumulates media
statistics, collects photo geotags and derives the movement trajectory
and dense photo clusters. Results are persisted after every page, so an
interrupted scan keeps what it had processed so far.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Int("batch-size", 0, "Assets per page (default from config)")
	scanCmd.Flags().Int("max-media", 0, "Stop after this many assets (default from config)")
	scanCmd.Flags().Int("concurrency", 0, "Parallel metadata fetches per page (default from config)")
	scanCmd.Flags().Float64("trajectory-threshold", 0, "Minimum distance in meters between trajectory points")
	scanCmd.Flags().Float64("cluster-radius", 0, "Cluster neighborhood radius in meters")
	scanCmd.Flags().Int("cluster-min-points", 0, "Minimum photos per cluster")
	scanCmd.Flags().Int("cluster-max-clusters", 0, "Maximum number of clusters to keep")
	scanCmd.Flags().Bool("no-progress", false, "Disable the progress bar")
}

// scanConfig merges config file, environment and flag overrides. Flags
// left at zero keep the configured value.
func scanConfig(cmd *cobra.Command, cfg *config.Config) scanner.Config {
	sc := scanner.Config{
		BatchSize:                 cfg.Scan.BatchSize,
		MaxMedia:                  cfg.Scan.MaxMedia,
		Concurrency:               cfg.Scan.Concurrency,
		TrajectoryThresholdMeters: cfg.Trajectory.ThresholdMeters,
		ClusterRadiusMeters:       cfg.Cluster.RadiusMeters,
		ClusterMinPoints:          cfg.Cluster.MinPoints,
		ClusterMaxClusters:        cfg.Cluster.MaxClusters,
	}
	if v := mustGetInt(cmd, "batch-size"); v > 0 {
		sc.BatchSize = v
	}
	if v := mustGetInt(cmd, "max-media"); v > 0 {
		sc.MaxMedia = v
	}
	if v := mustGetInt(cmd, "concurrency"); v > 0 {
		sc.Concurrency = v
	}
	if v := mustGetFloat64(cmd, "trajectory-threshold"); v > 0 {
		sc.TrajectoryThresholdMeters = v
	}
	if v := mustGetFloat64(cmd, "cluster-radius"); v > 0 {
		sc.ClusterRadiusMeters = v
	}
	if v := mustGetInt(cmd, "cluster-min-points"); v > 0 {
		sc.ClusterMinPoints = v
	}
	if v := mustGetInt(cmd, "cluster-max-clusters"); v > 0 {
		sc.ClusterMaxClusters = v
	}
	return sc
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	s := scanner.New(provider, st, scanConfig(cmd, cfg), log.Logger)

	if !mustGetBool(cmd, "no-progress") {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Scanning library"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("assets"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		prev := 0
		s.OnProgress = func(processed int) {
			bar.Add(processed - prev)
			prev = processed
		}
	}

	result, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	fmt.Println() // New line after progress bar

	fmt.Printf("Assets processed: %d\n", result.Stats.Total())
	fmt.Printf("  Local:   %d photos, %d videos\n", result.Stats.LocalPhotos, result.Stats.LocalVideos)
	fmt.Printf("  Network: %d photos, %d videos\n", result.Stats.NetworkPhotos, result.Stats.NetworkVideos)
	fmt.Printf("Geotagged photos:  %d\n", result.Locations)
	fmt.Printf("Trajectory points: %d\n", result.TrajectoryPoints)
	fmt.Printf("Dense clusters:    %d\n", result.Clusters)
	if result.CapReached {
		fmt.Println("Note: media cap reached, the library has more assets than were scanned")
	}

	return nil
}
