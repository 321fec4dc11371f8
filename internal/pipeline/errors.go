package pipeline

import (
	"errors"

	"github.com/nao1215/geotags/internal/metadata"
	"github.com/nao1215/geotags/internal/model"
)

var (
	// ErrOpen is returned when a candidate file cannot be opened or read.
	ErrOpen = errors.New("cannot read file")

	// ErrMissingCoordinates is returned when the GPS sub-block lacks
	// latitude or longitude.
	ErrMissingCoordinates = errors.New("missing GPS coordinates")

	// errPanic marks a fault recovered from inside a step.
	errPanic = errors.New("recovered panic")
)

// Reason classifies a per-file error into a skip reason.
// Anything not recognised, including geo.ErrNotNumeric and the malformed
// metadata errors, is treated as a malformed value.
func Reason(err error) model.SkipReason {
	switch {
	case errors.Is(err, ErrOpen):
		return model.SkipOpen
	case errors.Is(err, metadata.ErrNotImage):
		return model.SkipNotImage
	case errors.Is(err, metadata.ErrNoMetadata):
		return model.SkipNoMetadata
	case errors.Is(err, metadata.ErrNoPositionalData):
		return model.SkipNoPositionalData
	case errors.Is(err, ErrMissingCoordinates):
		return model.SkipMissingCoordinates
	default:
		return model.SkipMalformedValue
	}
}
