// Package config provides configuration structures and utilities for geotags.
// It defines the scan root, the export destination and format, and the
// opt-in extraction behaviors, plus discovery of the optional YAML file.
package config
