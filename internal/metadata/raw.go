package metadata

import (
	"errors"
	"fmt"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// GPSInfoTagID is the primary IFD tag that points at the GPS sub-IFD.
const GPSInfoTagID uint16 = 0x8825

// gpsIfdName is the last element of the GPS IFD path ("IFD/GPSInfo").
const gpsIfdName = "GPSInfo"

// RawMetadata maps integer tag ids to their decoded values for one file.
// Tags of the primary and Exif IFDs are flattened into the top level;
// the GPS sub-block is stored under GPSInfoTagID as a nested RawMetadata.
type RawMetadata map[uint16]any

// Read extracts the EXIF block embedded in data and flattens it.
//
// JPEG (APP1), PNG (eXIf) and any other container holding a TIFF-structured
// EXIF block are supported, since the block is located by its byte-order
// header. A file without EXIF returns ErrNoMetadata.
func Read(data []byte) (RawMetadata, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, ErrNoMetadata
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	return flatten(entries), nil
}

// flatten groups flat EXIF entries into the RawMetadata shape.
// The first value seen for a tag id wins, so thumbnail (IFD1) tags never
// shadow primary image tags.
func flatten(entries []exif.ExifTag) RawMetadata {
	raw := make(RawMetadata)
	var gps RawMetadata

	for _, entry := range entries {
		// Pointer tags to child IFDs carry offsets, not values.
		if entry.ChildIfdPath != "" {
			continue
		}

		target := raw
		if isGPSIfd(entry.IfdPath) {
			if gps == nil {
				gps = make(RawMetadata)
			}
			target = gps
		}

		if _, seen := target[entry.TagId]; seen {
			continue
		}
		target[entry.TagId] = entry.Value
	}

	if gps != nil {
		raw[GPSInfoTagID] = gps
	}
	return raw
}

// isGPSIfd reports whether an IFD path names the GPS sub-IFD.
func isGPSIfd(ifdPath string) bool {
	return ifdPath == gpsIfdName || strings.HasSuffix(ifdPath, "/"+gpsIfdName)
}
