package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-atlas/internal/config"
	"github.com/kozaktomas/photo-atlas/internal/stats"
	"github.com/kozaktomas/photo-atlas/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the media statistics from the last scan",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// printCounts prints a count map sorted by frequency.
func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	fmt.Printf("%s:\n", title)
	for _, e := range entries {
		fmt.Printf("  %-24s %d\n", e.key, e.count)
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var media stats.MediaStats
	if err := store.LoadJSON(ctx, st, store.KeyMediaStats, &media); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no statistics yet, run 'photo-atlas scan' first")
		}
		return fmt.Errorf("failed to load statistics: %w", err)
	}

	fmt.Printf("Total assets: %d\n", media.Total())
	fmt.Printf("  Local:   %d photos, %d videos\n", media.LocalPhotos, media.LocalVideos)
	fmt.Printf("  Network: %d photos, %d videos\n", media.NetworkPhotos, media.NetworkVideos)
	fmt.Println()

	printCounts("File types", media.FileTypes)
	printCounts("Creation years", media.CreationYears)
	printCounts("Time of day", media.TimeOfDay)
	printCounts("Orientations", media.Orientations)
	printCounts("Aspect ratios", media.AspectRatios)
	printCounts("Camera models", media.CameraModels)
	printCounts("Lens models", media.LensModels)

	fmt.Println()
	fmt.Printf("Highest altitude: %.1f m\n", media.HighestAltitude)
	if media.LowestAltitude != nil {
		fmt.Printf("Lowest altitude:  %.1f m\n", *media.LowestAltitude)
	} else {
		fmt.Println("Lowest altitude:  no data")
	}
	fmt.Printf("Fastest speed:    %.1f m/s\n", media.FastestSpeed)
	fmt.Printf("Video duration:   %.0f s total, %.0f s longest\n", media.TotalVideoDuration, media.LongestVideo)

	return nil
}
