package metadata

import "errors"

// Metadata read and decode errors. Callers classify them with errors.Is.
var (
	// ErrNoMetadata is returned when a file carries no EXIF block, or
	// the block holds no tags.
	ErrNoMetadata = errors.New("no EXIF metadata found")

	// ErrNoPositionalData is returned when the metadata has no GPS sub-block.
	ErrNoPositionalData = errors.New("no EXIF geotagging found")

	// ErrMalformedPositionalData is returned when the GPS slot does not hold
	// a tag map.
	ErrMalformedPositionalData = errors.New("malformed EXIF geotagging block")

	// ErrMalformedMetadata wraps structural EXIF parse failures.
	ErrMalformedMetadata = errors.New("malformed EXIF metadata")

	// ErrNotImage is returned by Verify when the content is not a
	// supported image.
	ErrNotImage = errors.New("not a supported image")
)
