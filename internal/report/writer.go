package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/geotags/internal/config"
	"github.com/nao1215/geotags/internal/model"
)

// Writer defines the interface for extraction output.
// Implementations write the records of an extraction in various formats.
type Writer interface {
	// Write outputs the extraction to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(ext *model.Extraction) (int, error)
}

// NewWriter returns the Writer for the given format name.
// An unsupported name returns config.ErrUnknownFormat.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch format {
	case config.FormatCSV:
		return NewCSVWriter(output), nil
	case config.FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case config.FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownFormat, format)
	}
}

// WriteFile writes the extraction to path in the given format.
// An existing file is overwritten without warning; missing parent
// directories are created.
func WriteFile(path, format string, ext *model.Extraction) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w, err := NewWriter(format, f)
	if err != nil {
		_ = f.Close() //nolint:errcheck // already failing
		return err
	}

	if _, err := w.Write(ext); err != nil {
		_ = f.Close() //nolint:errcheck // already failing
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// countingWriter counts the bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
