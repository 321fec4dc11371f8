package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/nao1215/geotags/internal/walker"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "geotags"

	// DefaultOutputFile is written in the current working directory.
	DefaultOutputFile = "coordinates.csv"

	// DefaultFormat is the export format used when none is requested.
	DefaultFormat = FormatCSV

	// DefaultWorkers keeps extraction sequential.
	DefaultWorkers = 1

	// DefaultLogFormat is the log output format used when none is requested.
	DefaultLogFormat = LogFormatText
)

// Export formats accepted by Config.Format.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Formats lists every supported export format in display order.
var Formats = []string{FormatCSV, FormatJSON, FormatMarkdown}

// Log formats accepted by Config.LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LogFormats lists every supported log format.
var LogFormats = []string{LogFormatText, LogFormatJSON}

// Config holds all configuration options for geotags.
// It is populated from the optional config file first and CLI flags
// second, then passed through the application explicitly.
type Config struct {
	// Root is the directory tree to scan.
	Root string

	// OutputFile is the export destination. An existing file is overwritten.
	OutputFile string

	// Format selects the exporter: csv, json or markdown.
	Format string

	// Workers is the number of files processed concurrently.
	// Output order does not depend on it.
	Workers int

	// Extensions lists the accepted file name suffixes without the dot.
	// Matching is exact unless IgnoreCase is set, so "Jpg" is not an image
	// by default.
	Extensions []string

	// IgnoreCase matches extensions with Unicode case folding.
	IgnoreCase bool

	// ApplyHemisphere negates latitude for S and longitude for W.
	// Off by default so output matches historical exports.
	ApplyHemisphere bool

	// ReportSkipped prints files that yielded no record after the export.
	ReportSkipped bool

	// Verbose enables debug logging, including one line per skipped file.
	Verbose bool

	// LogFormat selects the log handler: text or json.
	LogFormat string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the usual locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputFile: DefaultOutputFile,
		Format:     DefaultFormat,
		Workers:    DefaultWorkers,
		Extensions: slices.Clone(walker.DefaultExtensions),
		LogFormat:  DefaultLogFormat,
	}
}

// XDGConfigDir returns the XDG config directory for geotags.
// On Linux: ~/.config/geotags
// On macOS: ~/Library/Application Support/geotags
// On Windows: %APPDATA%\geotags
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Apply copies every value set in the file onto c.
// Zero values in the file leave c unchanged.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.Output != "" {
		c.OutputFile = f.Output
	}
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.Workers != 0 {
		c.Workers = f.Workers
	}
	if f.Extensions != nil {
		c.Extensions = slices.Clone(f.Extensions)
	}
	if f.IgnoreCase != nil {
		c.IgnoreCase = *f.IgnoreCase
	}
	if f.ApplyHemisphere != nil {
		c.ApplyHemisphere = *f.ApplyHemisphere
	}
	if f.ReportSkipped != nil {
		c.ReportSkipped = *f.ReportSkipped
	}
	if f.LogFormat != "" {
		c.LogFormat = f.LogFormat
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the package sentinels.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return ErrNoRoot
	}

	if strings.TrimSpace(c.OutputFile) == "" {
		return ErrEmptyOutput
	}

	if !slices.Contains(Formats, c.Format) {
		return ErrUnknownFormat
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if !slices.Contains(LogFormats, c.LogFormat) {
		return ErrUnknownLogFormat
	}

	// A nil list falls back to the defaults; an explicit list must say something.
	if c.Extensions != nil && !hasExtension(c.Extensions) {
		return ErrNoExtensions
	}

	return nil
}

func hasExtension(exts []string) bool {
	for _, e := range exts {
		if strings.TrimPrefix(strings.TrimSpace(e), ".") != "" {
			return true
		}
	}
	return false
}
