// Package main provides the entry point for the geotags CLI.
//
// geotags walks a directory tree, reads the GPS position embedded in the
// EXIF block of every JPEG and PNG image and writes one row per geotagged
// image to coordinates.csv.
//
// Usage:
//
//	geotags              # prompts for the directory
//	geotags <directory>
//
// See --help for all available options.
package main

// main is the entry point for geotags.
func main() {
	Execute()
}
