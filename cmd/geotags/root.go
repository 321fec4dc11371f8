package main

import (
	"fmt"
	"os"

	"github.com/nao1215/geotags/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for geotags.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geotags [directory]",
		Short: "Export the GPS coordinates of geotagged images",
		Long: `geotags walks a directory tree, reads the EXIF GPS block of every
JPEG and PNG image and writes the decimal coordinates to coordinates.csv.

When no directory is given, geotags asks for one on standard input.
Files without a usable position are skipped silently; use --report-skipped
to list them.

Examples:
  # Prompt for the directory
  geotags

  # Scan a directory and write coordinates.csv
  geotags ~/Pictures

  # Write JSON with signed coordinates
  geotags -f json -o coords.json --apply-hemisphere ~/Pictures

  # Accept any extension casing and use four workers
  geotags --ignore-case -w 4 ~/Pictures`,
		Version:       getVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExtractCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Export flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputFile,
		"Output file path (overwritten if it exists)")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format: csv, json or markdown")

	// Extraction flags
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of files processed concurrently")
	cmd.Flags().Bool("ignore-case", false,
		"Match image extensions in any letter case")
	cmd.Flags().Bool("apply-hemisphere", false,
		"Negate latitude for S and longitude for W references")
	cmd.Flags().Bool("report-skipped", false,
		"List files that yielded no coordinates")

	// Logging
	cmd.Flags().String("log-format", config.DefaultLogFormat,
		"Log output format on stderr: text or json")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .geotags in current or home directory)")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
