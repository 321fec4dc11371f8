package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/nao1215/geotags/internal/metadata"
	"github.com/nao1215/geotags/internal/model"
	"github.com/nao1215/geotags/internal/walker"
)

// Extractor walks a scan root and runs the extraction pipeline on every
// candidate image.
type Extractor struct {
	fs       billy.Filesystem
	walker   *walker.Walker
	pipeline *Pipeline
	logger   *slog.Logger

	// displayRoot names the scan root in logs and in Extraction.Root.
	displayRoot string

	// workers is the number of files processed concurrently.
	workers int

	filter          *walker.Filter
	decoder         *metadata.Decoder
	applyHemisphere bool
	steps           []Step
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorLogger sets a custom logger for the extractor and its pipeline.
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithDisplayRoot sets the root name reported in logs and in
// Extraction.Root. It defaults to the walk root inside the filesystem,
// which is "." when the filesystem is chrooted at the scan root.
func WithDisplayRoot(root string) ExtractorOption {
	return func(e *Extractor) {
		e.displayRoot = root
	}
}

// WithWorkers sets the number of files processed concurrently.
// Values below 1 are ignored. Default is 1.
func WithWorkers(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithFilter sets the extension filter used by the walker.
func WithFilter(f *walker.Filter) ExtractorOption {
	return func(e *Extractor) {
		e.filter = f
	}
}

// WithDecoder shares a GPS decoder across extractors.
func WithDecoder(d *metadata.Decoder) ExtractorOption {
	return func(e *Extractor) {
		e.decoder = d
	}
}

// WithApplyHemisphere enables signed coordinates for S and W references.
func WithApplyHemisphere(apply bool) ExtractorOption {
	return func(e *Extractor) {
		e.applyHemisphere = apply
	}
}

// WithSteps replaces the default extraction steps.
func WithSteps(steps ...Step) ExtractorOption {
	return func(e *Extractor) {
		e.steps = steps
	}
}

// NewExtractor creates an Extractor reading from fs beneath root.
func NewExtractor(fs billy.Filesystem, root string, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		fs:      fs,
		workers: 1,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.decoder == nil {
		e.decoder = metadata.NewDecoder()
	}
	if e.steps == nil {
		e.steps = DefaultSteps(fs, e.decoder, e.applyHemisphere)
	}

	e.walker = walker.New(fs, root, walker.WithFilter(e.filter))
	if e.displayRoot == "" {
		e.displayRoot = e.walker.Root()
	}
	e.pipeline = New(WithLogger(e.logger))
	e.pipeline.AddSteps(e.steps...)

	return e
}

// Pipeline returns the per-file pipeline.
func (e *Extractor) Pipeline() *Pipeline {
	return e.pipeline
}

// Run extracts records from every candidate file beneath the root.
// Per-file faults become skips. A traversal error or context cancellation
// ends the run and is returned together with what was collected so far.
func (e *Extractor) Run(ctx context.Context) (*model.Extraction, error) {
	ext := model.NewExtraction(e.displayRoot)

	e.logger.Debug("starting extraction",
		"root", e.displayRoot,
		"workers", e.workers,
	)

	var err error
	if e.workers > 1 {
		err = e.runConcurrent(ctx, ext)
	} else {
		err = e.runSequential(ctx, ext)
	}
	ext.Elapsed = time.Since(ext.StartedAt)

	if err != nil {
		return ext, err
	}

	e.logger.Debug("extraction complete",
		"root", e.displayRoot,
		"scanned", ext.Scanned,
		"records", len(ext.Records),
		"skipped", len(ext.Skipped),
		"elapsed", ext.Elapsed,
	)

	return ext, nil
}

func (e *Extractor) runSequential(ctx context.Context, ext *model.Extraction) error {
	for c, err := range e.walker.Candidates() {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		out := e.Process(ctx, c)
		if err := ctx.Err(); err != nil {
			return err
		}
		ext.Add(out)
	}
	return nil
}

// Process runs the pipeline for a single candidate. It never fails: every
// fault, including a panic raised while parsing, becomes a skip.
func (e *Extractor) Process(ctx context.Context, c walker.Candidate) (out model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = e.skip(c, fmt.Errorf("%w: %v", errPanic, r))
		}
	}()

	f := NewFile(c)
	if err := e.pipeline.Execute(ctx, f); err != nil {
		return e.skip(c, err)
	}
	if f.Record == nil {
		return e.skip(c, ErrMissingCoordinates)
	}

	e.logger.Debug("extracted coordinates",
		"path", c.Path(),
		"latitude", f.Record.Latitude,
		"longitude", f.Record.Longitude,
	)
	return model.Recorded(*f.Record)
}

func (e *Extractor) skip(c walker.Candidate, err error) model.Outcome {
	s := model.NewSkip(c.Subfolder, c.Name, Reason(err), err)
	e.logger.Debug("skipped file",
		"path", c.Path(),
		"reason", s.Reason,
		"error", err,
	)
	return model.Skipped(s)
}
