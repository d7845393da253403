package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-atlas/internal/config"
	"github.com/kozaktomas/photo-atlas/internal/store"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all persisted analysis results",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, key := range store.ResultKeys {
		if err := st.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}

	fmt.Println("All analysis results cleared")
	return nil
}
