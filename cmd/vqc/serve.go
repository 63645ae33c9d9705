package main

import (
	"errors"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jerald6111/video-quality-checker/internal/config"
	"github.com/jerald6111/video-quality-checker/internal/logging"
	"github.com/jerald6111/video-quality-checker/internal/processing"
	"github.com/jerald6111/video-quality-checker/internal/server"
)

func newServeCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the quality check HTTP API",
		Long: `Serve starts an HTTP server exposing the quality check pipeline.
Videos are submitted by URL to POST /api/check_quality; Prometheus
metrics are exported on /metrics.

Configuration comes from the environment: PORT, DOWNLOAD_DIR,
MAX_BODY_SIZE, and CORS_ALLOWED_ORIGINS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env",
		"environment file loaded before reading configuration")

	return cmd
}

func runServe(cmd *cobra.Command, envFile string) error {
	// Absent env files are fine; the environment still applies.
	_ = godotenv.Load(envFile)

	logger := logging.NewJSON(logging.LevelInfo)
	logging.SetGlobal(logger)

	cfg := config.LoadServer()
	srv := server.New(cfg, processing.Deps{Logger: logger}, logger)

	err := srv.ListenAndServe(cmd.Context())
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
