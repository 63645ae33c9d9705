package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jerald6111/video-quality-checker/internal/config"
	"github.com/jerald6111/video-quality-checker/internal/discovery"
	"github.com/jerald6111/video-quality-checker/internal/logging"
	"github.com/jerald6111/video-quality-checker/internal/processing"
	"github.com/jerald6111/video-quality-checker/internal/reporter"
)

type checkFlags struct {
	vocabulary    []string
	maxKeyframes  int
	minConfidence int
	logDir        string
	jsonOutput    bool
	verbose       bool
}

func newCheckCommand() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check <file-or-directory>",
		Short: "Run quality checks on video files",
		Long: `Check validates each video against broadcast delivery standards and
analyzes on-screen text for spelling and grammar defects. A directory
argument checks every video file directly inside it.

Exits non-zero when any file fails its quality check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.vocabulary, "vocabulary", nil,
		"project terms exempt from the spelling check (repeatable or comma-separated)")
	cmd.Flags().IntVar(&flags.maxKeyframes, "max-keyframes", config.DefaultMaxKeyframes,
		"maximum keyframes sampled for text analysis")
	cmd.Flags().IntVar(&flags.minConfidence, "min-confidence", config.DefaultMinWordConfidence,
		"OCR word confidence cutoff (0-99)")
	cmd.Flags().StringVar(&flags.logDir, "log-dir", "",
		"write a per-run log file into this directory")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false,
		"emit newline-delimited JSON events instead of terminal output")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"enable debug logging")

	return cmd
}

func runCheck(cmd *cobra.Command, input string, flags checkFlags) error {
	inputPath, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}

	cfg := config.NewConfig()
	cfg.Vocabulary = flags.vocabulary
	cfg.MaxKeyframes = flags.maxKeyframes
	cfg.MinWordConfidence = flags.minConfidence
	cfg.LogDir = flags.logDir
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.SetupFile(cfg.LogDir, flags.verbose)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if logger != nil {
		defer func() { _ = logger.Close() }()
		logging.SetGlobal(logger)
	}

	found, err := discovery.Resolve(inputPath)
	if err != nil {
		return err
	}
	found.Log(logger)

	var rep reporter.Reporter = reporter.NewTerminalReporter()
	if flags.jsonOutput {
		rep = reporter.NewJSONReporter()
	}

	deps := processing.Deps{Logger: logger}
	outcomes, err := processing.CheckVideos(cmd.Context(), cfg, deps, found.Files, rep)
	if err != nil {
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if !o.Report.Passed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed quality checks", failed, len(outcomes))
	}
	return nil
}
