// Package metadata reads embedded EXIF metadata from image files and decodes
// the positional (GPS) fields out of it.
//
// Reading and decoding are separate steps. Read flattens the EXIF block of
// one file into a RawMetadata map keyed by integer tag id, with the GPS
// sub-block nested under GPSInfoTagID. Decode then resolves the GPS sub-tag
// ids to their symbolic names using the standard go-exif tag index.
//
// # Usage
//
//	raw, err := metadata.Read(data)
//	if err != nil {
//	    return err
//	}
//	fields, err := metadata.NewDecoder().Decode(raw)
//	if err != nil {
//	    return err
//	}
//	lat, ok := fields.Latitude()
package metadata
