package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/nao1215/geotags/internal/geo"
	"github.com/nao1215/geotags/internal/metadata"
	"github.com/nao1215/geotags/internal/model"
)

// OpenStep reads the whole candidate file from the filesystem.
// The handle is closed before the step returns.
type OpenStep struct {
	fs billy.Filesystem
}

// NewOpenStep creates a step reading from fs.
func NewOpenStep(fs billy.Filesystem) *OpenStep {
	return &OpenStep{fs: fs}
}

// Name returns the step name.
func (s *OpenStep) Name() string {
	return "open"
}

// Do executes the open step.
func (s *OpenStep) Do(_ context.Context, f *File) error {
	file, err := s.fs.Open(f.Candidate.Path())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer file.Close() //nolint:errcheck // read-only handle

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}

	f.Data = data
	return nil
}

// VerifyStep rejects content that is not a decodable image header.
type VerifyStep struct{}

// NewVerifyStep creates a header verification step.
func NewVerifyStep() *VerifyStep {
	return &VerifyStep{}
}

// Name returns the step name.
func (s *VerifyStep) Name() string {
	return "verify"
}

// Do executes the verify step.
func (s *VerifyStep) Do(_ context.Context, f *File) error {
	format, err := metadata.Verify(f.Data)
	if err != nil {
		return err
	}
	f.Format = format
	return nil
}

// MetadataStep locates and flattens the EXIF block.
type MetadataStep struct{}

// NewMetadataStep creates an EXIF reading step.
func NewMetadataStep() *MetadataStep {
	return &MetadataStep{}
}

// Name returns the step name.
func (s *MetadataStep) Name() string {
	return "read_metadata"
}

// Do executes the metadata step.
func (s *MetadataStep) Do(_ context.Context, f *File) error {
	raw, err := metadata.Read(f.Data)
	if err != nil {
		return err
	}
	f.Raw = raw
	return nil
}

// DecodeStep resolves the GPS sub-block to symbolic field names.
type DecodeStep struct {
	decoder *metadata.Decoder
}

// NewDecodeStep creates a GPS decoding step. A nil decoder builds a new one.
func NewDecodeStep(decoder *metadata.Decoder) *DecodeStep {
	if decoder == nil {
		decoder = metadata.NewDecoder()
	}
	return &DecodeStep{decoder: decoder}
}

// Name returns the step name.
func (s *DecodeStep) Name() string {
	return "decode_gps"
}

// Do executes the decode step.
func (s *DecodeStep) Do(_ context.Context, f *File) error {
	fields, err := s.decoder.Decode(f.Raw)
	if err != nil {
		return err
	}
	f.Fields = fields
	return nil
}

// CoordinatesStep converts latitude and longitude to decimal degrees and
// builds the record.
type CoordinatesStep struct {
	applyHemisphere bool
}

// CoordinatesStepOption configures a CoordinatesStep.
type CoordinatesStepOption func(*CoordinatesStep)

// WithHemisphere negates latitude for S and longitude for W references.
func WithHemisphere(apply bool) CoordinatesStepOption {
	return func(s *CoordinatesStep) {
		s.applyHemisphere = apply
	}
}

// NewCoordinatesStep creates a conversion step.
// Hemisphere references are ignored unless WithHemisphere(true) is given.
func NewCoordinatesStep(opts ...CoordinatesStepOption) *CoordinatesStep {
	s := &CoordinatesStep{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *CoordinatesStep) Name() string {
	return "convert"
}

// Do executes the conversion step.
func (s *CoordinatesStep) Do(_ context.Context, f *File) error {
	rawLat, ok := f.Fields.Latitude()
	if !ok {
		return fmt.Errorf("%w: no %s", ErrMissingCoordinates, metadata.FieldLatitude)
	}
	rawLon, ok := f.Fields.Longitude()
	if !ok {
		return fmt.Errorf("%w: no %s", ErrMissingCoordinates, metadata.FieldLongitude)
	}

	lat, err := geo.ToDecimal(rawLat)
	if err != nil {
		return fmt.Errorf("latitude: %w", err)
	}
	lon, err := geo.ToDecimal(rawLon)
	if err != nil {
		return fmt.Errorf("longitude: %w", err)
	}

	if s.applyHemisphere {
		lat = geo.ApplyHemisphere(lat, f.Fields.LatitudeRef())
		lon = geo.ApplyHemisphere(lon, f.Fields.LongitudeRef())
	}

	rec := model.NewImageRecord(f.Candidate.Subfolder, f.Candidate.Name, lat, lon)
	f.Record = &rec
	return nil
}

// DefaultSteps returns the extraction steps in execution order.
func DefaultSteps(fs billy.Filesystem, decoder *metadata.Decoder, applyHemisphere bool) []Step {
	return []Step{
		NewOpenStep(fs),
		NewVerifyStep(),
		NewMetadataStep(),
		NewDecodeStep(decoder),
		NewCoordinatesStep(WithHemisphere(applyHemisphere)),
	}
}
