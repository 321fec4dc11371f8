package metadata

import (
	"bytes"
	"fmt"
	"image"

	// Register the decoders for the formats the walker accepts.
	_ "image/jpeg"
	_ "image/png"
)

// Verify checks that data starts with a decodable JPEG or PNG header and
// returns the detected format name. Only the header is parsed; pixel data
// is never decoded.
func Verify(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return format, nil
}
