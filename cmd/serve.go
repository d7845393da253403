package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-atlas/internal/config"
	"github.com/kozaktomas/photo-atlas/internal/scanner"
	"github.com/kozaktomas/photo-atlas/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Photo Atlas web server. The HTTP API exposes the persisted
analysis results and can trigger new scans.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "", "Listen address (defaults to LISTEN_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
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

	listen := cfg.Web.Listen
	if v := mustGetString(cmd, "listen"); v != "" {
		listen = v
	}

	s := scanner.New(provider, st, scanner.Config{
		BatchSize:                 cfg.Scan.BatchSize,
		MaxMedia:                  cfg.Scan.MaxMedia,
		Concurrency:               cfg.Scan.Concurrency,
		TrajectoryThresholdMeters: cfg.Trajectory.ThresholdMeters,
		ClusterRadiusMeters:       cfg.Cluster.RadiusMeters,
		ClusterMinPoints:          cfg.Cluster.MinPoints,
		ClusterMaxClusters:        cfg.Cluster.MaxClusters,
	}, log.Logger)

	server := web.NewServer(listen, s, st, log.Logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
