package model

import "path"

// SkipReason classifies why a candidate file produced no record.
type SkipReason string

const (
	// SkipOpen means the file could not be opened or read.
	SkipOpen SkipReason = "open"

	// SkipNotImage means the file content is not a recognised image.
	SkipNotImage SkipReason = "not-image"

	// SkipNoMetadata means the image carries no EXIF block.
	SkipNoMetadata SkipReason = "no-metadata"

	// SkipNoPositionalData means the EXIF block has no GPS sub-block.
	SkipNoPositionalData SkipReason = "no-positional-data"

	// SkipMissingCoordinates means the GPS sub-block lacks latitude or longitude.
	SkipMissingCoordinates SkipReason = "missing-coordinates"

	// SkipMalformedValue means a metadata value could not be parsed or converted.
	SkipMalformedValue SkipReason = "malformed-value"
)

// String returns the reason as text.
func (r SkipReason) String() string {
	return string(r)
}

// Skip records a candidate file that did not yield an ImageRecord.
type Skip struct {
	Subfolder string     `json:"subfolder"`
	FileName  string     `json:"file_name"`
	Reason    SkipReason `json:"reason"`

	// Err is the underlying fault. It is not serialized; Message carries its text.
	Err     error  `json:"-"`
	Message string `json:"message,omitempty"`
}

// NewSkip creates a Skip for the given file and fault.
func NewSkip(subfolder, fileName string, reason SkipReason, err error) Skip {
	s := Skip{
		Subfolder: subfolder,
		FileName:  fileName,
		Reason:    reason,
		Err:       err,
	}
	if err != nil {
		s.Message = err.Error()
	}
	return s
}

// Path returns the skipped file's path relative to the scan root.
func (s Skip) Path() string {
	return path.Join(s.Subfolder, s.FileName)
}

// Outcome is the result of processing one candidate file.
// Exactly one of Record and Skip is non-nil.
type Outcome struct {
	Record *ImageRecord
	Skip   *Skip
}

// Recorded returns an Outcome carrying a record.
func Recorded(r ImageRecord) Outcome {
	return Outcome{Record: &r}
}

// Skipped returns an Outcome carrying a skip.
func Skipped(s Skip) Outcome {
	return Outcome{Skip: &s}
}

// OK reports whether the outcome produced a record.
func (o Outcome) OK() bool {
	return o.Record != nil
}
