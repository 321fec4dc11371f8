package metadata

import (
	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// Symbolic names of the GPS fields the extractor consumes.
const (
	FieldLatitudeRef  = "GPSLatitudeRef"
	FieldLatitude     = "GPSLatitude"
	FieldLongitudeRef = "GPSLongitudeRef"
	FieldLongitude    = "GPSLongitude"
)

// maxGPSTagID is the highest tag id defined for the GPS IFD (GPSHPositioningError).
const maxGPSTagID uint16 = 0x001f

// GeoFields maps symbolic GPS field names to their raw values.
type GeoFields map[string]any

// Latitude returns the raw GPSLatitude value.
func (g GeoFields) Latitude() (any, bool) {
	v, ok := g[FieldLatitude]
	return v, ok
}

// Longitude returns the raw GPSLongitude value.
func (g GeoFields) Longitude() (any, bool) {
	v, ok := g[FieldLongitude]
	return v, ok
}

// LatitudeRef returns the raw GPSLatitudeRef value ("N" or "S").
func (g GeoFields) LatitudeRef() any {
	return g[FieldLatitudeRef]
}

// LongitudeRef returns the raw GPSLongitudeRef value ("E" or "W").
func (g GeoFields) LongitudeRef() any {
	return g[FieldLongitudeRef]
}

// HasCoordinates reports whether both latitude and longitude are present.
func (g GeoFields) HasCoordinates() bool {
	_, lat := g.Latitude()
	_, lon := g.Longitude()
	return lat && lon
}

// Decoder resolves GPS sub-tag ids to symbolic names.
// A Decoder is read-only after construction and safe for concurrent use.
type Decoder struct {
	names map[uint16]string
}

// NewDecoder creates a Decoder whose name table is loaded from the
// standard go-exif tag index for the GPS IFD.
func NewDecoder() *Decoder {
	ti := exif.NewTagIndex()
	names := make(map[uint16]string, int(maxGPSTagID)+1)

	for id := uint16(0); id <= maxGPSTagID; id++ {
		it, err := ti.Get(exifcommon.IfdGpsInfoStandardIfdIdentity, id)
		if err != nil {
			continue
		}
		names[id] = it.Name
	}

	return &Decoder{names: names}
}

// Name returns the symbolic name of a GPS sub-tag id.
func (d *Decoder) Name(id uint16) (string, bool) {
	name, ok := d.names[id]
	return name, ok
}

// Decode extracts the GPS fields from one file's metadata.
//
// It returns ErrNoMetadata for nil or empty input, ErrNoPositionalData when
// the GPS sub-block is missing, and ErrMalformedPositionalData when the GPS
// slot holds something other than a tag map. Every known sub-tag present is
// copied under its symbolic name; unknown ids are ignored.
func (d *Decoder) Decode(raw RawMetadata) (GeoFields, error) {
	if len(raw) == 0 {
		return nil, ErrNoMetadata
	}

	block, ok := raw[GPSInfoTagID]
	if !ok {
		return nil, ErrNoPositionalData
	}

	var gps map[uint16]any
	switch b := block.(type) {
	case RawMetadata:
		gps = b
	case map[uint16]any:
		gps = b
	default:
		return nil, ErrMalformedPositionalData
	}

	fields := make(GeoFields, len(gps))
	for id, value := range gps {
		if name, known := d.names[id]; known {
			fields[name] = value
		}
	}
	return fields, nil
}
