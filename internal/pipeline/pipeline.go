package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/geotags/internal/metadata"
	"github.com/nao1215/geotags/internal/model"
	"github.com/nao1215/geotags/internal/walker"
)

// File is the per-file state threaded through the steps.
// Each step reads what earlier steps filled in and adds its own result.
type File struct {
	// Candidate is the file being processed.
	Candidate walker.Candidate

	// Data is the full file content.
	Data []byte

	// Format is the image format reported by the header check.
	Format string

	// Raw is the flattened EXIF block.
	Raw metadata.RawMetadata

	// Fields is the decoded GPS sub-block.
	Fields metadata.GeoFields

	// Record is set by the final step on success.
	Record *model.ImageRecord

	// Performed lists the names of the steps that completed.
	Performed []string
}

// NewFile creates the state for one candidate.
func NewFile(c walker.Candidate) *File {
	return &File{Candidate: c}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the state
// accumulated by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// A returned error ends processing of the file.
	Do(ctx context.Context, f *File) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It holds no per-file state, so one Pipeline may run many files
// concurrently.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence for one file.
// It checks for cancellation before each step and returns the first error.
func (p *Pipeline) Execute(ctx context.Context, f *File) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := step.Do(ctx, f); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"path", f.Candidate.Path(),
				"error", err,
			)
			return err
		}

		f.Performed = append(f.Performed, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
