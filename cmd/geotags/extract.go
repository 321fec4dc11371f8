package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/nao1215/geotags/internal/config"
	"github.com/nao1215/geotags/internal/log"
	"github.com/nao1215/geotags/internal/pipeline"
	"github.com/nao1215/geotags/internal/report"
	"github.com/nao1215/geotags/internal/walker"
	"github.com/spf13/cobra"
)

// promptText is shown when no directory argument is given.
const promptText = "Enter the path to extract coordinates from: "

// runExtractCmd executes the extraction.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if cfg.Root == "" {
		cfg.Root, err = promptRoot(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runExtract(ctx, cfg, osfs.New(cfg.Root), logger, cmd.OutOrStdout())
}

// newLogger builds the stderr logger for the configured log format.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return log.NewJSONLogger(w, cfg.Verbose)
	}
	return log.NewLogger(w, cfg.Verbose)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the configuration file and the
// command flags. Flags given on the command line win over the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	if err := cfg.Load(); err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %s", err, cfg.ConfigFilePath)
		}
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if flags.Changed("output") {
		if cfg.OutputFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("ignore-case") {
		if cfg.IgnoreCase, err = flags.GetBool("ignore-case"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("apply-hemisphere") {
		if cfg.ApplyHemisphere, err = flags.GetBool("apply-hemisphere"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("report-skipped") {
		if cfg.ReportSkipped, err = flags.GetBool("report-skipped"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-format") {
		if cfg.LogFormat, err = flags.GetString("log-format"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.Root = args[0]
	}

	return cfg, nil
}

// promptRoot asks for the scan root and reads one line.
// The trailing line break is removed; other whitespace is kept.
func promptRoot(in io.Reader, out io.Writer) (string, error) {
	if _, err := fmt.Fprint(out, promptText); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// runExtract scans fs, which is rooted at cfg.Root, and writes the export
// file. Nothing is written when the scan fails.
func runExtract(ctx context.Context, cfg *config.Config, fs billy.Filesystem, logger *slog.Logger, out io.Writer) error {
	logger.Info("starting extraction",
		"root", cfg.Root,
		"output", cfg.OutputFile,
		"format", cfg.Format,
		"workers", cfg.Workers,
	)

	filter := walker.NewFilter(cfg.Extensions, cfg.IgnoreCase)
	extractor := pipeline.NewExtractor(
		fs,
		".",
		pipeline.WithDisplayRoot(cfg.Root),
		pipeline.WithExtractorLogger(logger),
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithFilter(filter),
		pipeline.WithApplyHemisphere(cfg.ApplyHemisphere),
	)
	logger.Debug("extraction pipeline",
		"steps", extractor.Pipeline().StepNames(),
		"extensions", filter.Extensions(),
	)

	ext, err := extractor.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", cfg.Root, err)
	}

	if err := report.WriteFile(cfg.OutputFile, cfg.Format, ext); err != nil {
		return err
	}

	if cfg.ReportSkipped {
		skips := report.NewSkipWriter(out, report.WithVerbose(cfg.Verbose))
		if _, err := skips.Write(ext); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(out, "Coordinates saved to %s.\n", cfg.OutputFile); err != nil {
		return err
	}
	return nil
}
