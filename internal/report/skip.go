package report

import (
	"fmt"
	"io"

	"github.com/nao1215/geotags/internal/model"
)

// SkipWriter lists the files that produced no record, one per line.
type SkipWriter struct {
	baseWriter

	// verbose appends the underlying error to each line.
	verbose bool
}

// SkipWriterOption configures a SkipWriter.
type SkipWriterOption func(*SkipWriter)

// WithVerbose enables printing the underlying error for each file.
func WithVerbose(verbose bool) SkipWriterOption {
	return func(w *SkipWriter) {
		w.verbose = verbose
	}
}

// NewSkipWriter creates a SkipWriter that outputs to the given writer.
func NewSkipWriter(output io.Writer, opts ...SkipWriterOption) *SkipWriter {
	w := &SkipWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the skipped files in discovery order.
func (w *SkipWriter) Write(ext *model.Extraction) (int, error) {
	cw := &countingWriter{w: w.output}

	if len(ext.Skipped) == 0 {
		_, err := fmt.Fprintf(cw, "No files skipped (%d scanned).\n", ext.Scanned)
		return cw.n, err
	}

	if _, err := fmt.Fprintf(cw, "Skipped %d of %d files:\n", len(ext.Skipped), ext.Scanned); err != nil {
		return cw.n, err
	}
	for _, s := range ext.Skipped {
		var err error
		if w.verbose && s.Message != "" {
			_, err = fmt.Fprintf(cw, "  %s: %s (%s)\n", s.Path(), s.Reason, s.Message)
		} else {
			_, err = fmt.Fprintf(cw, "  %s: %s\n", s.Path(), s.Reason)
		}
		if err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}
