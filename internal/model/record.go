package model

// ImageRecord is the exported position of a single geotagged image.
// A record is only built when both latitude and longitude were present and
// decodable; it is never modified afterwards.
type ImageRecord struct {
	// Subfolder is the directory containing the image, relative to the
	// scan root. Images directly under the root use ".".
	Subfolder string `json:"subfolder"`

	// FileName is the base name of the image file.
	FileName string `json:"file_name"`

	// Latitude in decimal degrees.
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees.
	Longitude float64 `json:"longitude"`
}

// NewImageRecord creates an ImageRecord.
func NewImageRecord(subfolder, fileName string, latitude, longitude float64) ImageRecord {
	return ImageRecord{
		Subfolder: subfolder,
		FileName:  fileName,
		Latitude:  latitude,
		Longitude: longitude,
	}
}
