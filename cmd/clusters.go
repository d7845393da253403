package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-atlas/internal/cluster"
	"github.com/kozaktomas/photo-atlas/internal/config"
	"github.com/kozaktomas/photo-atlas/internal/store"
)

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Show the dense photo clusters from the last scan",
	RunE:  runClusters,
}

func init() {
	rootCmd.AddCommand(clustersCmd)
}

func runClusters(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var clusters []cluster.Cluster
	if err := store.LoadJSON(ctx, st, store.KeyDenseClusters, &clusters); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no clusters yet, run 'photo-atlas scan' first")
		}
		return fmt.Errorf("failed to load clusters: %w", err)
	}

	if len(clusters) == 0 {
		fmt.Println("No dense clusters found")
		return nil
	}

	fmt.Printf("Dense clusters: %d\n", len(clusters))
	for i, c := range clusters {
		fmt.Printf("  #%d: %d photos, %.1f photos/km2\n", i+1, c.Size(), c.Density())
		fmt.Printf("      lat %9.5f .. %9.5f, long %10.5f .. %10.5f\n",
			c.Box.MinLat, c.Box.MaxLat, c.Box.MinLong, c.Box.MaxLong)
	}

	return nil
}
