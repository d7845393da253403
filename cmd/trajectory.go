package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-atlas/internal/config"
	"github.com/kozaktomas/photo-atlas/internal/library"
	"github.com/kozaktomas/photo-atlas/internal/store"
)

var trajectoryCmd = &cobra.Command{
	Use:   "trajectory",
	Short: "Show the movement trajectory from the last scan",
	RunE:  runTrajectory,
}

func init() {
	rootCmd.AddCommand(trajectoryCmd)

	trajectoryCmd.Flags().Int("limit", 0, "Show at most this many points (0 for all)")
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var points []library.PhotoLocation
	if err := store.LoadJSON(ctx, st, store.KeyTrajectory, &points); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no trajectory yet, run 'photo-atlas scan' first")
		}
		return fmt.Errorf("failed to load trajectory: %w", err)
	}

	fmt.Printf("Trajectory points: %d\n", len(points))

	limit := mustGetInt(cmd, "limit")
	if limit <= 0 || limit > len(points) {
		limit = len(points)
	}
	for _, p := range points[:limit] {
		ts := time.UnixMilli(p.Timestamp).Format("2006-01-02 15:04")
		fmt.Printf("  %s  %9.5f, %10.5f  (%s)\n", ts, p.Latitude, p.Longitude, p.ID)
	}
	if limit < len(points) {
		fmt.Printf("  ... %d more\n", len(points)-limit)
	}

	return nil
}
